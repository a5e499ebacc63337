package schema

import (
	"encoding/json"
	"sort"
)

// Type enumerates the value types a [Property] may declare. It deliberately
// mirrors the JSON type system rather than Go's: model output is JSON-shaped,
// so "number" covers every numeric width.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Property describes one expected field of the output record.
type Property struct {
	// Type is the declared JSON type. An empty or unknown type resolves to a
	// null default and disables coercion for the field.
	Type Type `json:"type,omitempty"`

	// Required marks fields that must be present in every returned record.
	// Missing required fields are filled with the resolved default rather
	// than dropped.
	Required bool `json:"required,omitempty"`

	// Default, when set, takes precedence over the type-derived default.
	Default any `json:"default,omitempty"`

	// Description is forwarded verbatim into the augmented prompt so the
	// model knows what the field means.
	Description string `json:"description,omitempty"`
}

// Descriptor is the caller-supplied contract for the expected output record.
//
// A Descriptor is immutable by convention: the extraction core only reads it,
// so a single instance can back any number of concurrent calls.
type Descriptor struct {
	// Properties maps field name to its expected shape.
	Properties map[string]*Property `json:"properties,omitempty"`

	// Fallback, when non-nil, is returned verbatim (copied) by the fallback
	// generator instead of a record assembled from per-property defaults.
	Fallback map[string]any `json:"fallback,omitempty"`

	// Description is an optional human-readable summary of the record,
	// included in the augmented prompt when present.
	Description string `json:"description,omitempty"`
}

// DefaultValue resolves the value used for a field that could not be
// extracted. An explicitly set Default wins; otherwise the declared type maps
// to its zero-ish JSON value (""/0/false/[]/{}), and anything else, including
// a nil property or an undeclared type, resolves to nil.
//
// The function is pure: resolved array and object defaults are fresh values,
// never shared between calls.
func DefaultValue(p *Property) any {
	if p == nil {
		return nil
	}
	if p.Default != nil {
		return p.Default
	}
	switch p.Type {
	case TypeString:
		return ""
	case TypeNumber:
		return float64(0)
	case TypeBoolean:
		return false
	case TypeArray:
		return []any{}
	case TypeObject:
		return map[string]any{}
	default:
		return nil
	}
}

// RequiredFields returns the names of all required properties in stable
// (sorted) order, suitable for prompt construction and log output.
func (d *Descriptor) RequiredFields() []string {
	if d == nil {
		return nil
	}
	var names []string
	for name, prop := range d.Properties {
		if prop != nil && prop.Required {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FieldNames returns every declared property name in stable (sorted) order.
func (d *Descriptor) FieldNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Properties))
	for name := range d.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Property returns the descriptor for name, or nil when the field is not
// declared (or the Descriptor itself is nil).
func (d *Descriptor) Property(name string) *Property {
	if d == nil {
		return nil
	}
	return d.Properties[name]
}

// JSON returns the descriptor serialized as compact JSON. It is embedded
// verbatim in the augmented prompt so the model sees the exact contract the
// caller supplied. Marshalling a Descriptor cannot fail for JSON-compatible
// Default/Fallback values; on the pathological path (e.g. a channel default)
// an empty object is returned so prompt construction never aborts.
func (d *Descriptor) JSON() string {
	if d == nil {
		return "{}"
	}
	encoded, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
