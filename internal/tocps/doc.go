// Package tocps converts a fast.Program into a cps.Program: every
// expression is converted under an explicit, reified continuation
// (cont, below) rather than via an implicit call stack, which is what
// makes join points for if/let/call fall out of the conversion itself
// instead of needing a separate control-flow-graph-building pass.
package tocps
