// Package extract recovers a structured record from raw language-model text
// through a fixed-priority cascade of independent strategies. Each strategy
// assumes progressively less about the input, from "this is already valid
// JSON" down to "this is prose that merely mentions field names", and the
// first one to produce a non-nil object wins. There is no scoring or voting;
// ordering is a first-class, tested property of the cascade.
//
// The main entry point is [Extractor.Extract]. Strategies treat their own
// parse failures as normal outcomes; only when every registered strategy
// fails does Extract return [ErrCascadeExhausted], after logging a diagnostic
// snapshot of the unparseable text.
package extract
