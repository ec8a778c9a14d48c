package target

import "github.com/brmh/fnlc/internal/errors"

// Emitter is the target emitter contract of spec §6: function/block/
// phi declaration, the arithmetic/comparison/cast ops, branches,
// calls, returns, module verification, and object-file writing. Lower
// drives the declaration and instruction methods and internal/driver
// drives WriteObject and SupportsLinking (it verifies with
// target.Verify directly, so VerifyModule has no caller here), so a
// future real-LLVM Emitter could replace simtarget
// without internal/target's lowering logic changing.
type Emitter interface {
	// DeclareFunction registers a function's signature and returns a
	// handle Lower attaches blocks to, in dominator preorder.
	DeclareFunction(name string, params []Type, result Type) *Function

	// DeclareParam materializes fn's index'th parameter as a Value at
	// fn's entry block.
	DeclareParam(fn *Function, name string, index int, typ Type) *Param

	// DeclareBlock adds a new, empty Block to fn. The first call for
	// a given fn declares its entry block.
	DeclareBlock(fn *Function, name string) *Block

	// CreatePhi pre-creates a phi of type typ at block's entry, with
	// no incoming edges yet — AddIncoming fills them once every
	// predecessor's terminator has been lowered.
	CreatePhi(block *Block, typ Type) *Phi

	// AddIncoming records that control reaching phi's block from from
	// carries value v.
	AddIncoming(phi *Phi, from *Block, v Value)

	ConstI64(v int64) Value
	ConstI8(v int64) Value

	Add(block *Block, a, b Value) Value
	Sub(block *Block, a, b Value) Value
	Mul(block *Block, a, b Value) Value
	// ICmpEq compares a and b for equality, producing an i1.
	ICmpEq(block *Block, a, b Value) Value
	// ZExt widens an i1 to i8 (eqI64's result convention).
	ZExt(block *Block, v Value, to Type) Value
	// Trunc narrows an i8 boolean down to i1 for a CondBr's condition.
	Trunc(block *Block, v Value, to Type) Value

	// Call emits a call to callee and returns its result value.
	Call(block *Block, callee *Function, args []Value) Value

	Br(block *Block, dest *Block)
	CondBr(block *Block, cond Value, t, f *Block)
	Ret(block *Block, v Value)

	// Module returns the module built so far.
	Module() *Module

	// VerifyModule runs the structural verifier (spec §4.7's stand-in
	// for llvm::verifyFunction) and returns every LoweringError found.
	VerifyModule() []*errors.CompilerError

	// WriteObject writes the module to path in whatever object
	// representation this Emitter supports, or returns an error if it
	// does not support object emission at all.
	WriteObject(module *Module, path string) error

	// SupportsLinking reports whether WriteObject produces a real
	// linkable object file internal/driver should hand to cc, versus
	// a debug-only textual stand-in.
	SupportsLinking() bool
}
