// Package driver implements spec §4.8's single-shot orchestration:
// read source, lex+parse, type-check, CPS-convert, schedule and
// lower, hand the target module to an Emitter, and — when that
// Emitter supports it — invoke the C linker. Every stage's errors are
// internal/errors.CompilerError values that abort the pipeline
// immediately (spec §7); every entry point here returns the first one
// to its caller, which formats and prints it.
package driver
