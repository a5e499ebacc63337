package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"coax/core/sanitize"
	"coax/schema"
)

// Strategy is one self-contained algorithm attempting to recover a record
// from raw model text. A strategy reports failure through its error return;
// the cascade treats that as "try the next one", never as a terminal fault.
type Strategy interface {
	// Name identifies the strategy in telemetry and diagnostics.
	Name() string

	// TryExtract attempts recovery. desc may be nil; strategies that require
	// a schema fail fast without one.
	TryExtract(text string, desc *schema.Descriptor) (Record, error)
}

// Registered strategy names, in cascade priority order.
const (
	StrategyDirect            = "direct"
	StrategyMarkdown          = "markdown"
	StrategyObjectExtraction  = "object_extraction"
	StrategyContentIndicators = "content_indicators"
	StrategyLineReconstruct   = "line_reconstruction"
	StrategyAggressiveClean   = "aggressive_cleaning"
	StrategyPartialCompletion = "partial_completion"
	StrategySchemaRecovery    = "schema_based_recovery"
)

// DefaultStrategies returns the full cascade in its fixed priority order,
// most-reliable first. The ordering is load-bearing: earlier strategies make
// stronger assumptions about the input and therefore cannot misfire on text
// that a later, looser strategy would mangle.
func DefaultStrategies() []Strategy {
	return []Strategy{
		directStrategy{},
		markdownStrategy{},
		objectExtractionStrategy{},
		contentIndicatorsStrategy{},
		lineReconstructionStrategy{},
		aggressiveCleaningStrategy{},
		partialCompletionStrategy{},
		schemaRecoveryStrategy{},
	}
}

// --- 1. direct ---

// directStrategy assumes the text is already a valid JSON object.
type directStrategy struct{}

func (directStrategy) Name() string { return StrategyDirect }

func (directStrategy) TryExtract(text string, _ *schema.Descriptor) (Record, error) {
	return parseObject(strings.TrimSpace(text))
}

// --- 2. markdown ---

var (
	fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	inlineCodeRe  = regexp.MustCompile("`([^`]*\\{[\\s\\S]*?\\}[^`]*)`")
)

// markdownStrategy extracts the object from a fenced code block (```json or
// bare ```), falling back to inline single-backtick spans.
type markdownStrategy struct{}

func (markdownStrategy) Name() string { return StrategyMarkdown }

func (markdownStrategy) TryExtract(text string, _ *schema.Descriptor) (Record, error) {
	for _, re := range []*regexp.Regexp{fencedBlockRe, inlineCodeRe} {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			rec, err := parseCandidate(match[1])
			if err == nil {
				return rec, nil
			}
		}
	}
	return nil, errors.New("no parseable code block found")
}

// --- 3. object_extraction ---

var (
	trailingObjectRe = regexp.MustCompile(`\{[\s\S]*\}\s*$`)
	braceSpanRe      = regexp.MustCompile(`\{[\s\S]*\}`)
)

// objectExtractionStrategy assumes one JSON object is embedded in prose and
// tries three span patterns of decreasing specificity: an object terminating
// the text, the widest brace span anywhere, and a string-aware nested-brace
// scan from the first opening brace.
type objectExtractionStrategy struct{}

func (objectExtractionStrategy) Name() string { return StrategyObjectExtraction }

func (objectExtractionStrategy) TryExtract(text string, _ *schema.Descriptor) (Record, error) {
	var candidates []string
	if span := trailingObjectRe.FindString(text); span != "" {
		candidates = append(candidates, span)
	}
	if span := braceSpanRe.FindString(text); span != "" {
		candidates = append(candidates, span)
	}
	if start := strings.IndexByte(text, '{'); start >= 0 {
		if end := matchingBrace(text, start); end > start {
			candidates = append(candidates, text[start:end+1])
		}
	}

	for _, candidate := range candidates {
		rec, err := parseCandidate(candidate)
		if err == nil {
			return rec, nil
		}
	}
	return nil, errors.New("no embedded object span parsed")
}

// --- 4. content_indicators ---

// contentIndicatorLabelRe matches the labels models prepend to their payload
// ("Response: {...}", "here is the JSON - {...}") up to and including the
// opening brace. The object itself is delimited by a string-aware brace scan
// rather than the regex, so nested objects are captured whole.
var contentIndicatorLabelRe = regexp.MustCompile(`(?i)\b(?:response|result|output|answer|json)\b\s*[:\-]?\s*\{`)

type contentIndicatorsStrategy struct{}

func (contentIndicatorsStrategy) Name() string { return StrategyContentIndicators }

func (contentIndicatorsStrategy) TryExtract(text string, _ *schema.Descriptor) (Record, error) {
	for _, loc := range contentIndicatorLabelRe.FindAllStringIndex(text, -1) {
		open := loc[1] - 1
		end := matchingBrace(text, open)
		if end < 0 {
			continue
		}
		rec, err := cleanAndParse(text[open : end+1])
		if err == nil {
			return rec, nil
		}
	}
	return nil, errors.New("no labeled object parsed")
}

// --- 5. line_reconstruction ---

// lineReconstructionStrategy reassembles an object that spans multiple lines,
// possibly with leading prose: collection starts at the first line opening
// with '{' and stops once the brace balance returns to zero.
type lineReconstructionStrategy struct{}

func (lineReconstructionStrategy) Name() string { return StrategyLineReconstruct }

func (lineReconstructionStrategy) TryExtract(text string, _ *schema.Descriptor) (Record, error) {
	var collected []string
	collecting := false

	for _, line := range strings.Split(text, "\n") {
		if !collecting {
			if !strings.HasPrefix(strings.TrimSpace(line), "{") {
				continue
			}
			collecting = true
		}
		collected = append(collected, line)

		joined := strings.Join(collected, "\n")
		open, closed := braceBalance(joined)
		if open > 0 && open == closed {
			return cleanAndParse(joined)
		}
	}
	return nil, errors.New("no balanced multi-line object found")
}

// --- 6. aggressive_cleaning ---

// aggressiveCleaningStrategy discards everything outside the first balanced
// brace span and sanitizes whatever is left. By this point in the cascade the
// span itself is known to be malformed, so the candidate always goes through
// Clean, with a jsonrepair retry behind it.
type aggressiveCleaningStrategy struct{}

func (aggressiveCleaningStrategy) Name() string { return StrategyAggressiveClean }

func (aggressiveCleaningStrategy) TryExtract(text string, _ *schema.Descriptor) (Record, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, errors.New("no opening brace")
	}
	end := matchingBrace(text, start)
	if end < 0 {
		return nil, errors.New("no matching closing brace")
	}

	span := text[start : end+1]
	rec, err := parseObject(sanitize.Clean(span))
	if err == nil {
		return rec, nil
	}
	return repairAndParse(span)
}

// --- 7. partial_completion ---

// partialCompletionStrategy repairs an object truncated mid-stream: it
// appends the synthetic closing braces the truncation swallowed. When the cut
// lands mid-field (trailing ':' or ','), the dangling field is completed from
// the schema default when one is declared, or with null.
type partialCompletionStrategy struct{}

func (partialCompletionStrategy) Name() string { return StrategyPartialCompletion }

func (partialCompletionStrategy) TryExtract(text string, desc *schema.Descriptor) (Record, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, errors.New("no opening brace")
	}

	candidate := strings.TrimSpace(text[start:])
	open, closed := braceBalance(candidate)
	if open <= closed {
		return nil, errors.New("object is not truncated")
	}

	switch danglingTail(candidate) {
	case ':':
		completion := "null"
		if prop := desc.Property(lastKey(candidate)); prop != nil {
			if encoded, err := json.Marshal(schema.DefaultValue(prop)); err == nil {
				completion = string(encoded)
			}
		}
		candidate += " " + completion
	case ',':
		trimmed := strings.TrimRight(candidate, " \t\r\n")
		candidate = trimmed[:len(trimmed)-1]
	}

	candidate += strings.Repeat("}", open-closed)
	return cleanAndParse(candidate)
}

// --- 8. schema_based_recovery ---

// keyValuePairRe matches loose "key": value pairs regardless of enclosing
// braces: quoted or bare keys, and scalar, quoted, bracketed or braced
// values. Nested containers deeper than one level are out of reach for this
// last-ditch pattern; by the time the cascade gets here the text is not
// well-formed JSON at all.
var keyValuePairRe = regexp.MustCompile(`"?([A-Za-z_$][A-Za-z0-9_$]*)"?\s*:\s*("(?:[^"\\]|\\.)*"|'[^']*'|-?\d+(?:\.\d+)?|true|false|True|False|null|\[[^\]]*\]|\{[^{}]*\})`)

// schemaRecoveryStrategy rebuilds a record from whatever field mentions
// survive in garbled text. It requires a schema: extracted values are kept,
// and every declared property the text never yielded is filled with its
// resolved default, so required fields are never absent.
type schemaRecoveryStrategy struct{}

func (schemaRecoveryStrategy) Name() string { return StrategySchemaRecovery }

func (schemaRecoveryStrategy) TryExtract(text string, desc *schema.Descriptor) (Record, error) {
	if desc == nil || len(desc.Properties) == 0 {
		return nil, errors.New("schema required")
	}

	rec := Record{}
	for _, match := range keyValuePairRe.FindAllStringSubmatch(text, -1) {
		key, raw := match[1], match[2]
		if _, seen := rec[key]; seen {
			continue // first mention wins
		}
		rec[key] = parseLooseValue(raw)
	}

	for name, prop := range desc.Properties {
		if _, ok := rec[name]; !ok {
			rec[name] = schema.DefaultValue(prop)
		}
	}
	return rec, nil
}

// parseLooseValue interprets one regex-captured value literal: quotes are
// stripped, numeric literals parsed, booleans interpreted, and container
// chunks given one sanitize-and-parse chance before degrading to the raw
// string.
func parseLooseValue(raw string) any {
	switch {
	case raw == "null":
		return nil
	case raw == "true" || raw == "True":
		return true
	case raw == "false" || raw == "False":
		return false
	}

	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') {
		unquoted := raw[1 : len(raw)-1]
		if raw[0] == '"' {
			if decoded, err := strconv.Unquote(raw); err == nil {
				return decoded
			}
		}
		return unquoted
	}

	if num, err := strconv.ParseFloat(raw, 64); err == nil {
		return num
	}

	if raw[0] == '[' || raw[0] == '{' {
		var value any
		if err := json.Unmarshal([]byte(sanitize.Clean(raw)), &value); err == nil {
			return value
		}
	}
	return raw
}
