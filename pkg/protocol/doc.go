// Package protocol implements the extended-JSON wire format for client trees.
//
// A client tree is plain structural JSON with two sentinel markers smuggled
// through string values. Every value passes through a substitution hook while
// encoding and its inverse while decoding.
//
// # Wire Format
//
// Primitives, sequences and mappings are JSON scalars, arrays and objects
// (object key order is preserved). An element is an object with fixed keys:
//
//	{"$$typeof":"$RE","type":"div","key":null,"ref":null,"props":{...}}
//
// A Fragment element carries "$RF" as its type.
//
// # Substitution
//
// Encoding (EscapeValue):
//
//   - ElementMarker → "$RE"
//   - FragmentMarker → "$RF"
//   - any string starting with "$" gets one extra leading "$"
//
// Decoding (UnescapeValue):
//
//   - "$RE" → ElementMarker
//   - "$RF" → FragmentMarker
//   - any string starting with "$$" loses one leading "$"
//
// Escaping happens only while encoding and decoding unconditionally
// un-escapes once, so a user string "$RE" travels as "$$RE" and never
// becomes a marker. Object keys are not substituted.
//
// # Limits
//
// Decoding enforces MaxNodeDepth and MaxCollectionCount so hostile input
// cannot exhaust the stack or memory.
package protocol
