package schema

import "testing"

func TestFromStruct(t *testing.T) {
	type assessment struct {
		Emotion   string         `json:"emotion" description:"dominant emotion"`
		Intensity float64        `json:"intensity" default:"5"`
		Flags     []string       `json:"flags,omitempty"`
		Meta      map[string]any `json:"meta"`
		Note      *string        `json:"note"`
		Active    bool           `json:"active"`
		Count     int            `json:"count"`
		Ignored   string         `json:"-"`
		untagged  string
	}

	desc := FromStruct[assessment]()

	tests := []struct {
		field        string
		wantType     Type
		wantRequired bool
	}{
		{field: "emotion", wantType: TypeString, wantRequired: true},
		{field: "intensity", wantType: TypeNumber, wantRequired: true},
		{field: "flags", wantType: TypeArray, wantRequired: false},
		{field: "meta", wantType: TypeObject, wantRequired: true},
		{field: "note", wantType: TypeString, wantRequired: false},
		{field: "active", wantType: TypeBoolean, wantRequired: true},
		{field: "count", wantType: TypeNumber, wantRequired: true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			prop := desc.Property(tt.field)
			if prop == nil {
				t.Fatalf("property %q not derived", tt.field)
			}
			if prop.Type != tt.wantType {
				t.Errorf("type = %q, want %q", prop.Type, tt.wantType)
			}
			if prop.Required != tt.wantRequired {
				t.Errorf("required = %v, want %v", prop.Required, tt.wantRequired)
			}
		})
	}

	if desc.Property("Ignored") != nil || desc.Property("-") != nil {
		t.Errorf("json:\"-\" fields must be skipped")
	}
	if desc.Property("untagged") != nil {
		t.Errorf("unexported fields must be skipped")
	}
	if got := desc.Property("emotion").Description; got != "dominant emotion" {
		t.Errorf("description = %q, want tag value", got)
	}
	if got := desc.Property("intensity").Default; got != float64(5) {
		t.Errorf("default = %v (%T), want parsed number 5", got, got)
	}
}

func TestFromStruct_PointerTarget(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}

	desc := FromStruct[*inner]()
	if desc.Property("name") == nil {
		t.Fatalf("pointer-to-struct target should be unwrapped")
	}
}

func TestFromStruct_NonStruct(t *testing.T) {
	desc := FromStruct[int]()
	if len(desc.Properties) != 0 {
		t.Fatalf("non-struct target should yield an empty descriptor, got %v", desc.Properties)
	}
}

func TestFromStruct_FieldNameWithoutTag(t *testing.T) {
	type plain struct {
		Value string
	}

	desc := FromStruct[plain]()
	if desc.Property("Value") == nil {
		t.Fatalf("untagged exported field should use the Go field name")
	}
}

func TestParseTagDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		t    Type
		want any
	}{
		{name: "number", raw: "2.5", t: TypeNumber, want: float64(2.5)},
		{name: "bool", raw: "true", t: TypeBoolean, want: true},
		{name: "string passthrough", raw: "hello", t: TypeString, want: "hello"},
		{name: "unparseable number keeps raw", raw: "lots", t: TypeNumber, want: "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTagDefault(tt.raw, tt.t); got != tt.want {
				t.Errorf("parseTagDefault(%q, %q) = %v, want %v", tt.raw, tt.t, got, tt.want)
			}
		})
	}
}
