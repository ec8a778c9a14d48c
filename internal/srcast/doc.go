// Package srcast is the untyped surface AST this compiler's mid-end
// checks, plus a small recursive-descent parser that builds it from
// internal/lexer tokens.
//
// The lexer/parser pair is an external collaborator to the typed
// mid-end: internal/checker treats a srcast.Program exactly as a black
// box handed to it by whatever produced the untyped tree. This package
// stays deliberately narrow — it implements only the grammar this
// compiler's front end needs (val, fun, if/else, bool, i64, True/False,
// the four primop tokens) rather than a general-purpose language front
// end.
package srcast
