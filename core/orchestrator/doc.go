// Package orchestrator drives structured generation end to end: it augments
// the caller's prompt with JSON-only instructions and the serialized schema,
// calls the text-generation collaborator under a deadline, runs the
// extraction cascade over whatever comes back, and, when both the primary
// attempt and the single bounded retry fail, produces a fallback record.
//
// The public operation, [Orchestrator.GenerateStructured], never returns an
// error: every failure mode collapses into some record. Telemetry is updated
// exactly once per call, at the terminal transition.
package orchestrator
