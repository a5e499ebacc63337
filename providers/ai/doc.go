// Package ai defines the boundary to the text-generation collaborator: the
// [Generator] interface and the request/response types that cross it. The
// orchestrator depends only on this contract; concrete transports live in
// subpackages (openrouter for real traffic, noop for tests and degraded
// development).
//
// A Generator call is the pipeline's sole suspension point. Implementations
// must honor context cancellation and may fail freely; every failure mode is
// absorbed by the orchestrator's fallback transitions.
package ai
