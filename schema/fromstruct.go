package schema

import (
	"reflect"
	"strconv"
	"strings"
)

// FromStruct derives a [Descriptor] from a Go struct type using its json
// tags. Field types map onto the JSON type system (all numeric kinds become
// "number"); a field is required unless it is a pointer or carries omitempty.
// Two extra tags are honored:
//
//	description:"..."  forwarded to Property.Description
//	default:"..."      parsed according to the field's declared type
//
// Example:
//
//	type Mood struct {
//	    Emotion   string  `json:"emotion" description:"dominant emotion"`
//	    Intensity float64 `json:"intensity" default:"5"`
//	    Note      *string `json:"note,omitempty"`
//	}
//	desc := schema.FromStruct[Mood]()
func FromStruct[T any]() *Descriptor {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	desc := &Descriptor{Properties: map[string]*Property{}}
	if t.Kind() != reflect.Struct {
		return desc
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		omitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				if jsonTag[:commaIdx] != "" {
					name = jsonTag[:commaIdx]
				}
				omitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				name = jsonTag
			}
		}

		fieldType := field.Type
		isPtr := fieldType.Kind() == reflect.Ptr
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		prop := &Property{
			Type:        typeForKind(fieldType.Kind()),
			Required:    !isPtr && !omitEmpty,
			Description: field.Tag.Get("description"),
		}
		if raw, ok := field.Tag.Lookup("default"); ok {
			prop.Default = parseTagDefault(raw, prop.Type)
		}

		desc.Properties[name] = prop
	}

	return desc
}

// typeForKind maps a Go kind onto the JSON type system. Unhandled kinds
// (chan, func, interface) fall through to an empty type, which resolves to a
// null default.
func typeForKind(kind reflect.Kind) Type {
	switch kind {
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Struct, reflect.Map:
		return TypeObject
	default:
		return ""
	}
}

// parseTagDefault interprets a `default:"..."` tag value according to the
// declared type. Unparseable values fall back to the raw string so the tag is
// never silently dropped.
func parseTagDefault(raw string, t Type) any {
	switch t {
	case TypeNumber:
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			return val
		}
	case TypeBoolean:
		if val, err := strconv.ParseBool(raw); err == nil {
			return val
		}
	}
	return raw
}
