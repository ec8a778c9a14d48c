// Package checker implements a bidirectional type checker in two
// passes — declare every top-level FunDef's type, then check every
// body against its declared codomain — turning a srcast.Program into
// a fast.Program.
//
// The two passes run through a Pass/PassManager pair, so that
// declare-then-check gets the same forward-declaration handling a
// longer pass pipeline would, just with two passes instead of a dozen.
package checker
