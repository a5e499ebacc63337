package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		name string
		prop *Property
		want any
	}{
		{name: "nil property", prop: nil, want: nil},
		{name: "explicit default wins over type", prop: &Property{Type: TypeNumber, Default: 7.5}, want: 7.5},
		{name: "string type", prop: &Property{Type: TypeString}, want: ""},
		{name: "number type", prop: &Property{Type: TypeNumber}, want: float64(0)},
		{name: "boolean type", prop: &Property{Type: TypeBoolean}, want: false},
		{name: "undeclared type", prop: &Property{}, want: nil},
		{name: "unknown type", prop: &Property{Type: "integer"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultValue(tt.prop); got != tt.want {
				t.Errorf("DefaultValue(%+v) = %v, want %v", tt.prop, got, tt.want)
			}
		})
	}
}

func TestDefaultValue_Containers(t *testing.T) {
	arr := DefaultValue(&Property{Type: TypeArray})
	if got, ok := arr.([]any); !ok || len(got) != 0 {
		t.Errorf("array default = %v, want empty slice", arr)
	}

	obj := DefaultValue(&Property{Type: TypeObject})
	if got, ok := obj.(map[string]any); !ok || len(got) != 0 {
		t.Errorf("object default = %v, want empty map", obj)
	}
}

// TestDefaultValue_FreshContainers verifies that container defaults are never
// shared: mutating one resolved default must not leak into the next.
func TestDefaultValue_FreshContainers(t *testing.T) {
	prop := &Property{Type: TypeObject}

	first := DefaultValue(prop).(map[string]any)
	first["polluted"] = true

	second := DefaultValue(prop).(map[string]any)
	if len(second) != 0 {
		t.Errorf("second resolved default = %v, want fresh empty map", second)
	}
}

func TestRequiredFields(t *testing.T) {
	desc := &Descriptor{
		Properties: map[string]*Property{
			"zeta":  {Type: TypeString, Required: true},
			"alpha": {Type: TypeNumber, Required: true},
			"gamma": {Type: TypeBoolean},
			"nil":   nil,
		},
	}

	want := []string{"alpha", "zeta"}
	if got := desc.RequiredFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredFields() = %v, want %v (sorted)", got, want)
	}

	var nilDesc *Descriptor
	if got := nilDesc.RequiredFields(); got != nil {
		t.Errorf("nil descriptor RequiredFields() = %v, want nil", got)
	}
}

func TestFieldNames_Sorted(t *testing.T) {
	desc := &Descriptor{
		Properties: map[string]*Property{
			"c": {}, "a": {}, "b": {},
		},
	}
	want := []string{"a", "b", "c"}
	if got := desc.FieldNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldNames() = %v, want %v", got, want)
	}
}

func TestProperty_NilSafe(t *testing.T) {
	var nilDesc *Descriptor
	if nilDesc.Property("x") != nil {
		t.Errorf("nil descriptor Property() should return nil")
	}

	desc := &Descriptor{Properties: map[string]*Property{"x": {Type: TypeString}}}
	if desc.Property("x") == nil {
		t.Errorf("declared property should be returned")
	}
	if desc.Property("y") != nil {
		t.Errorf("undeclared property should return nil")
	}
}

func TestDescriptorJSON(t *testing.T) {
	var nilDesc *Descriptor
	if got := nilDesc.JSON(); got != "{}" {
		t.Errorf("nil descriptor JSON() = %q, want {}", got)
	}

	desc := &Descriptor{
		Properties: map[string]*Property{
			"mood": {Type: TypeString, Required: true, Description: "dominant mood"},
		},
		Description: "mood assessment",
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(desc.JSON()), &decoded); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}
	props, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatalf("JSON() missing properties: %v", decoded)
	}
	if _, ok := props["mood"]; !ok {
		t.Errorf("JSON() missing declared property: %v", props)
	}
}
