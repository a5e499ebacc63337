package utils

import (
	"encoding/json"
	"fmt"
)

// DefaultMaxStringLength bounds truncated strings when callers pass a
// non-positive limit.
const DefaultMaxStringLength = 500

// TruncateString shortens s to at most maxLen bytes, appending a suffix that
// records the original length so readers know data was omitted. Collaborator
// errors and raw completions can embed entire response bodies, so every
// string logged from an untrusted source should pass through here. If maxLen
// is zero or negative, [DefaultMaxStringLength] is used.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}

// JSONToString serialises object to JSON and returns it as a string. When the
// optional indent argument is true the output is pretty-printed with
// two-space indentation. On marshalling failure it returns a JSON-formatted
// error string rather than panicking, so the result is always safe to print
// or log.
func JSONToString(object any, indent ...bool) string {
	var encoded []byte
	var err error
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(object, "", "  ")
	} else {
		encoded, err = json.Marshal(object)
	}
	if err != nil {
		return `{"error": "failed to marshal to JSON: ` + err.Error() + `"}`
	}
	return string(encoded)
}
