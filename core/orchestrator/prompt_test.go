package orchestrator

import (
	"strings"
	"testing"

	"coax/schema"
)

func TestAugmentPrompt_NoSchema(t *testing.T) {
	got := augmentPrompt("describe the weather", nil)

	if !strings.HasPrefix(got, "describe the weather") {
		t.Errorf("original prompt must lead the augmented prompt: %q", got)
	}
	if !strings.Contains(got, "single valid JSON object") {
		t.Errorf("augmented prompt missing JSON-only instruction: %q", got)
	}
	if strings.Contains(got, "schema") {
		t.Errorf("schema section must be absent without a descriptor: %q", got)
	}
}

func TestAugmentPrompt_WithSchema(t *testing.T) {
	desc := &schema.Descriptor{
		Properties: map[string]*schema.Property{
			"mood":  {Type: schema.TypeString, Required: true, Description: "dominant mood"},
			"score": {Type: schema.TypeNumber},
		},
	}

	got := augmentPrompt("assess this", desc)

	if !strings.Contains(got, desc.JSON()) {
		t.Errorf("augmented prompt must embed the schema verbatim: %q", got)
	}
	if !strings.Contains(got, "- mood (string, required): dominant mood") {
		t.Errorf("augmented prompt missing mood field line: %q", got)
	}
	if !strings.Contains(got, "- score (number, optional)") {
		t.Errorf("augmented prompt missing score field line: %q", got)
	}
	if !strings.Contains(got, "Every required field must be present: mood.") {
		t.Errorf("augmented prompt missing required-fields sentence: %q", got)
	}
}

func TestPropertyType(t *testing.T) {
	if got := propertyType(nil); got != "any" {
		t.Errorf("propertyType(nil) = %q, want any", got)
	}
	if got := propertyType(&schema.Property{}); got != "any" {
		t.Errorf("propertyType(untyped) = %q, want any", got)
	}
	if got := propertyType(&schema.Property{Type: schema.TypeArray}); got != "array" {
		t.Errorf("propertyType(array) = %q, want array", got)
	}
}

func TestClassifyPrompt(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{prompt: "analyze the EMOTION here", want: "emotion"},
		{prompt: "estimate energy levels", want: "energy"},
		{prompt: "psychological assessment", want: "psychological"},
		{prompt: "what is 2+2", want: "general"},
		{prompt: "", want: "general"},
	}

	for _, tt := range tests {
		if got := classifyPrompt(tt.prompt); got != tt.want {
			t.Errorf("classifyPrompt(%q) = %q, want %q", tt.prompt, got, tt.want)
		}
	}
}
