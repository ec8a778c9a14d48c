// Package target implements the backend lowerer of spec §4.7: it
// schedules a internal/cps function onto basic blocks (via
// internal/doms and internal/schedule) and translates the result to
// an LLVM-style SSA module — typed values, phi nodes at block
// entries, one terminator per block.
//
// The "target emitter contract" of spec §6 is the Emitter interface;
// simtarget is this repository's one concrete implementation, a small
// in-memory SSA module modeled on the teacher's own bytecode target
// representation (internal/bytecode/instruction.go, vm_core.go) rather
// than on real LLVM, since no LLVM binding exists anywhere in the
// example pack. Lower drives an Emitter through the steps of spec
// §4.7: declare, schedule, build predecessors, declare blocks in
// dominator preorder, fill bodies, patch phis.
package target
