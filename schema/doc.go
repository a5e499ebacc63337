// Package schema defines the shape contract a caller supplies when asking for
// structured output: a [Descriptor] mapping field names to typed [Property]
// entries. It also provides [DefaultValue], the default-value resolution used
// whenever a field cannot be recovered from model text, and [FromStruct] for
// deriving a Descriptor from a Go struct via its json tags.
//
// Descriptors are plain data. The extraction core never mutates a Descriptor;
// callers may share one across concurrent requests.
package schema
