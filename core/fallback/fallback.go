package fallback

import (
	"strings"

	"coax/core/extract"
	"coax/schema"
)

// IntentClassifier reports whether a prompt contains an explicit proactive
// follow-up request. When it fires, the generator returns an
// engagement-affirmative record regardless of the schema, so an explicit user
// request is never silently dropped just because extraction failed.
type IntentClassifier func(prompt string) bool

// DefaultFollowUpPhrases are the stock phrasings of an explicit follow-up
// request. They are matched case-insensitively as substrings.
var DefaultFollowUpPhrases = []string{
	"send me another message",
	"message me again",
	"follow up with me",
	"check in on me",
	"write to me in",
	"remind me in",
}

// KeywordClassifier builds an IntentClassifier from a phrase list. An empty
// list classifies nothing.
func KeywordClassifier(phrases ...string) IntentClassifier {
	lowered := make([]string, len(phrases))
	for i, phrase := range phrases {
		lowered[i] = strings.ToLower(phrase)
	}
	return func(prompt string) bool {
		p := strings.ToLower(prompt)
		for _, phrase := range lowered {
			if strings.Contains(p, phrase) {
				return true
			}
		}
		return false
	}
}

// Heuristic pairs a prompt keyword with a minimal plausible record for that
// domain. Heuristics run only when no schema shape is available.
type Heuristic struct {
	Keyword string
	Record  extract.Record
}

// defaultHeuristics covers the record shapes the surrounding system asks for
// most often, keyed by the vocabulary its prompts use.
var defaultHeuristics = []Heuristic{
	{Keyword: "emotion", Record: extract.Record{
		"primary_emotion": "neutral",
		"intensity":       float64(5),
		"confidence":      0.3,
	}},
	{Keyword: "energy", Record: extract.Record{
		"energy_level":   float64(5),
		"social_battery": float64(5),
		"confidence":     0.3,
	}},
	{Keyword: "psychological", Record: extract.Record{
		"state":      "stable",
		"confidence": 0.3,
	}},
}

// followUpRecord is the fixed engagement-affirmative answer for prompts that
// explicitly ask for a proactive follow-up.
var followUpRecord = extract.Record{
	"should_initiate": true,
	"confidence":      0.95,
	"reasoning":       "user explicitly requested a follow-up message",
}

// Generator builds last-resort records. The zero value is not usable; create
// one with [New].
type Generator struct {
	classifier IntentClassifier
	heuristics []Heuristic
}

// Option configures a Generator.
type Option func(*Generator)

// WithClassifier replaces the default keyword-based follow-up classifier.
func WithClassifier(classifier IntentClassifier) Option {
	return func(g *Generator) {
		g.classifier = classifier
	}
}

// WithHeuristics replaces the default prompt-content heuristic table.
func WithHeuristics(heuristics []Heuristic) Option {
	return func(g *Generator) {
		g.heuristics = heuristics
	}
}

// New creates a Generator with the default classifier and heuristics.
func New(opts ...Option) *Generator {
	g := &Generator{
		classifier: KeywordClassifier(DefaultFollowUpPhrases...),
		heuristics: defaultHeuristics,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build produces a fallback record. It is total: some record is always
// returned. desc and cause may both be nil.
//
// Resolution order:
//  1. explicit follow-up intent in the prompt -> fixed affirmative record
//  2. schema-declared fallback value, verbatim
//  3. schema properties -> record of resolved defaults
//  4. prompt-content heuristics
//  5. generic {error, message} record
func (g *Generator) Build(desc *schema.Descriptor, prompt string, cause error) extract.Record {
	if g.classifier != nil && g.classifier(prompt) {
		return followUpRecord.Clone()
	}

	if desc != nil && desc.Fallback != nil {
		return extract.Record(desc.Fallback).Clone()
	}

	if desc != nil && len(desc.Properties) > 0 {
		rec := make(extract.Record, len(desc.Properties))
		for name, prop := range desc.Properties {
			rec[name] = schema.DefaultValue(prop)
		}
		return rec
	}

	lowered := strings.ToLower(prompt)
	for _, h := range g.heuristics {
		if strings.Contains(lowered, h.Keyword) {
			return h.Record.Clone()
		}
	}

	rec := extract.Record{
		"error":   "generation_failed",
		"message": "structured output could not be recovered",
	}
	if cause != nil {
		rec["message"] = cause.Error()
	}
	return rec
}
