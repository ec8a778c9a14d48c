// Package errors implements the compiler's fail-fast error taxonomy:
// LexError, ParseError, TypeError, LoweringError, and LinkError, plus
// the source-context-and-caret formatting every kind shares.
//
// None of these are recovered locally — every pass that can fail
// returns the first one it hits, internal/driver passes it up
// unchanged, and cmd/fnlc formats and prints it.
package errors
