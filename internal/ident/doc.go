// Package ident implements the compiler's name interner.
//
// A Name is an opaque, totally-ordered identity carried by every
// binder and reference in the F-AST, the CPS IR, and the target SSA
// module. Two Names compare equal only if they were produced by calls
// to Sourced with the same spelling on the same Interner, or are the
// very same value returned from Fresh/Freshen — freshening a Name changes its identity even though
// it may keep the same display spelling.
//
// Interner state (the dedup table and the monotonic counter) lives on
// a per-compilation *Interner value; there is no package-level name
// table, matching the "no global state" requirement for a compiler
// that may run many times in the same process.
package ident
