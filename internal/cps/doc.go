// Package cps implements the sea-of-nodes continuation-passing-style
// IR: pure Exprs float free of any particular Block until a later pass
// schedules them (see internal/schedule), while Transfers (If, Call,
// Goto) and Conts (Block, Return) carry the only control-flow
// structure that exists before scheduling.
//
// Every node is built through a Builder, mirroring the arena-backed
// Builder of the C++ ancestor this package is translated from; Go's
// garbage collector replaces the arena; there is nothing else to free.
package cps
