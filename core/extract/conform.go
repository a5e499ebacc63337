package extract

import (
	"strconv"

	"coax/schema"
)

// conformToSchema enforces the record invariant for schema-backed calls:
// every required property is present (extracted or defaulted) and every
// declared property holds a value coercible to its declared type. Values the
// declared type cannot absorb are replaced with the resolved default;
// undeclared fields pass through untouched.
func conformToSchema(rec Record, desc *schema.Descriptor) Record {
	if desc == nil || len(desc.Properties) == 0 {
		return rec
	}

	for name, prop := range desc.Properties {
		if prop == nil {
			continue
		}
		value, present := rec[name]
		if !present {
			if prop.Required {
				rec[name] = schema.DefaultValue(prop)
			}
			continue
		}
		if coerced, ok := coerceValue(value, prop.Type); ok {
			rec[name] = coerced
		} else {
			rec[name] = schema.DefaultValue(prop)
		}
	}
	return rec
}

// coerceValue converts value to the declared type where a lossless reading
// exists. An empty declared type accepts anything.
func coerceValue(value any, t schema.Type) (any, bool) {
	switch t {
	case "":
		return value, true

	case schema.TypeString:
		switch v := value.(type) {
		case string:
			return v, true
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(v), true
		}

	case schema.TypeNumber:
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case string:
			if num, err := strconv.ParseFloat(v, 64); err == nil {
				return num, true
			}
		}

	case schema.TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, true
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b, true
			}
		}

	case schema.TypeArray:
		if v, ok := value.([]any); ok {
			return v, true
		}

	case schema.TypeObject:
		switch v := value.(type) {
		case map[string]any:
			return v, true
		case Record:
			return map[string]any(v), true
		}
	}
	return nil, false
}
