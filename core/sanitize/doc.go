// Package sanitize repairs near-JSON text at the character level so that a
// subsequent parse attempt has a fighting chance. [Clean] applies a fixed
// sequence of transforms (comment stripping, trailing-comma removal, quote
// normalization, bare-key quoting, literal normalization, fraction evaluation,
// whitespace collapsing), each implemented as a lexical scan that tracks
// string and escape context, so braces, commas and quote characters inside
// string literals survive.
//
// Clean is a total function: it never fails and its output is best-effort,
// not guaranteed parseable. Callers must still attempt a JSON parse and treat
// parse failure as a normal outcome.
package sanitize
