package fallback

import (
	"errors"
	"testing"

	"coax/core/extract"
	"coax/schema"
)

func TestKeywordClassifier(t *testing.T) {
	classifier := KeywordClassifier(DefaultFollowUpPhrases...)

	tests := []struct {
		name   string
		prompt string
		want   bool
	}{
		{name: "exact phrase", prompt: "please follow up with me tomorrow", want: true},
		{name: "case insensitive", prompt: "SEND ME ANOTHER MESSAGE at noon", want: true},
		{name: "no phrase", prompt: "how is the weather", want: false},
		{name: "empty prompt", prompt: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier(tt.prompt); got != tt.want {
				t.Errorf("classifier(%q) = %v, want %v", tt.prompt, got, tt.want)
			}
		})
	}

	empty := KeywordClassifier()
	if empty("send me another message") {
		t.Errorf("empty classifier should match nothing")
	}
}

func TestBuild_FollowUpIntentWinsOverSchema(t *testing.T) {
	desc := &schema.Descriptor{
		Fallback: map[string]any{"ignored": true},
	}

	rec := New().Build(desc, "could you check in on me later?", nil)
	if rec["should_initiate"] != true {
		t.Fatalf("expected affirmative follow-up record, got %v", rec)
	}
	if rec["confidence"] != 0.95 {
		t.Errorf("confidence = %v, want 0.95", rec["confidence"])
	}
	if _, present := rec["ignored"]; present {
		t.Errorf("schema fallback must not leak into follow-up record")
	}
}

func TestBuild_SchemaFallbackVerbatim(t *testing.T) {
	desc := &schema.Descriptor{
		Properties: map[string]*schema.Property{
			"mood": {Type: schema.TypeString, Required: true},
		},
		Fallback: map[string]any{"mood": "unknown", "confidence": 0.0},
	}

	rec := New().Build(desc, "describe the mood", nil)
	if rec["mood"] != "unknown" {
		t.Fatalf("expected declared fallback verbatim, got %v", rec)
	}

	// The returned record must be a copy: mutating it cannot corrupt the
	// descriptor shared across calls.
	rec["mood"] = "mutated"
	if desc.Fallback["mood"] != "unknown" {
		t.Errorf("caller mutation leaked into descriptor fallback")
	}
}

func TestBuild_SchemaDefaultsRecord(t *testing.T) {
	desc := &schema.Descriptor{
		Properties: map[string]*schema.Property{
			"name":   {Type: schema.TypeString, Required: true},
			"score":  {Type: schema.TypeNumber},
			"tuned":  {Type: schema.TypeNumber, Default: 9.0},
			"active": {Type: schema.TypeBoolean},
		},
	}

	rec := New().Build(desc, "anything", nil)
	if len(rec) != 4 {
		t.Fatalf("expected one default per declared property, got %v", rec)
	}
	if rec["name"] != "" || rec["score"] != float64(0) || rec["active"] != false {
		t.Errorf("type defaults wrong: %v", rec)
	}
	if rec["tuned"] != 9.0 {
		t.Errorf("explicit default ignored: %v", rec["tuned"])
	}
}

func TestBuild_Heuristics(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantKey string
	}{
		{name: "emotion prompt", prompt: "Analyze the Emotion in this text", wantKey: "primary_emotion"},
		{name: "energy prompt", prompt: "estimate current energy levels", wantKey: "energy_level"},
		{name: "psychological prompt", prompt: "assess the psychological state", wantKey: "state"},
	}

	gen := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := gen.Build(nil, tt.prompt, nil)
			if _, ok := rec[tt.wantKey]; !ok {
				t.Fatalf("record %v missing heuristic key %q", rec, tt.wantKey)
			}
			if rec["confidence"] != 0.3 {
				t.Errorf("heuristic records carry low confidence, got %v", rec["confidence"])
			}
		})
	}
}

func TestBuild_GenericRecord(t *testing.T) {
	gen := New()

	rec := gen.Build(nil, "completely unrelated prompt", nil)
	if rec["error"] != "generation_failed" {
		t.Fatalf("expected generic error record, got %v", rec)
	}

	cause := errors.New("collaborator timed out")
	rec = gen.Build(nil, "completely unrelated prompt", cause)
	if rec["message"] != "collaborator timed out" {
		t.Errorf("message = %v, want cause text", rec["message"])
	}
}

func TestBuild_CustomClassifierAndHeuristics(t *testing.T) {
	gen := New(
		WithClassifier(func(prompt string) bool { return prompt == "ping" }),
		WithHeuristics([]Heuristic{
			{Keyword: "inventory", Record: extract.Record{"stock": float64(0)}},
		}),
	)

	if rec := gen.Build(nil, "ping", nil); rec["should_initiate"] != true {
		t.Errorf("custom classifier did not fire: %v", rec)
	}
	if rec := gen.Build(nil, "count the inventory", nil); rec["stock"] != float64(0) {
		t.Errorf("custom heuristic did not fire: %v", rec)
	}
	if rec := gen.Build(nil, "analyze the emotion", nil); rec["error"] != "generation_failed" {
		t.Errorf("default heuristics should have been replaced: %v", rec)
	}
}

// TestBuild_AlwaysReturnsRecord pins the totality contract: every input
// combination yields a non-nil record.
func TestBuild_AlwaysReturnsRecord(t *testing.T) {
	gen := New()
	cases := []struct {
		desc   *schema.Descriptor
		prompt string
		cause  error
	}{
		{nil, "", nil},
		{&schema.Descriptor{}, "", errors.New("x")},
		{&schema.Descriptor{Properties: map[string]*schema.Property{}}, "prompt", nil},
	}

	for _, c := range cases {
		if rec := gen.Build(c.desc, c.prompt, c.cause); rec == nil {
			t.Fatalf("Build(%v, %q, %v) returned nil", c.desc, c.prompt, c.cause)
		}
	}
}
