// Package utils provides small shared helpers used across the coax
// internals: log-safe string truncation, JSON stringification for output and
// diagnostics, and an elapsed-time timer for latency accounting.
//
// Key entry points: [TruncateString] for bounding log attribute values,
// [JSONToString] for always-printable JSON output, and [Timer] for measuring
// request latency.
package utils
