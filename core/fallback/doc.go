// Package fallback constructs the record returned when extraction never got
// a chance (collaborator unavailable) or ran out of strategies. A fallback
// record is never derived from parsed model text; it exists to honor the
// contract that a structured call always resolves to a record.
//
// The resolution order is fixed: explicit follow-up intent in the prompt,
// a schema-declared fallback value, schema-shaped defaults, prompt-content
// heuristics, and finally a generic error record. The intent classifier and
// the heuristic table are injectable so domain phrasing can change without
// touching recovery logic.
package fallback
