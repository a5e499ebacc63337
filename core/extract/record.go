package extract

// Record is a structured result recovered from model text: a mapping from
// field name to JSON-compatible value (string, float64, bool, nil, []any or
// nested map[string]any). Records are produced fresh per call; ownership
// transfers entirely to the caller.
type Record map[string]any

// Clone returns a shallow copy of the record. Used where a shared template
// (schema fallback values, heuristic records) must not leak mutable state to
// the caller.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}
