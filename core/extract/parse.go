package extract

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"coax/core/sanitize"
)

// parseObject unmarshals text into a Record and rejects anything that is not
// a JSON object: arrays, bare scalars and the null literal are all failures,
// because the cascade contract is "first strategy producing an object wins".
func parseObject(text string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("parsed value is not a JSON object")
	}
	return rec, nil
}

// cleanAndParse tries a direct parse first and, on failure, one more parse of
// the sanitized text.
func cleanAndParse(text string) (Record, error) {
	rec, err := parseObject(text)
	if err == nil {
		return rec, nil
	}
	return parseObject(sanitize.Clean(text))
}

// repairAndParse runs the candidate through jsonrepair before a final parse
// attempt. This is the last resort inside a single strategy; repair failures
// surface as that strategy's failure, never further.
func repairAndParse(text string) (Record, error) {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, err
	}
	return parseObject(repaired)
}

// parseCandidate chains the three parse attempts a span-matching strategy
// makes: raw, sanitized, repaired.
func parseCandidate(text string) (Record, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty candidate")
	}
	rec, err := cleanAndParse(text)
	if err == nil {
		return rec, nil
	}
	return repairAndParse(text)
}
