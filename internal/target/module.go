package target

import "fmt"

// Value is a typed SSA value: a function Param, an integer Const, a
// Phi, or the result of an Instr. Every Value has a module-unique id,
// assigned in emission order, which both the printer and the verifier
// use to refer to it as "%N" without needing pointer identity to
// survive a JSON round-trip.
type Value interface {
	valueNode()
	ID() int
	Type() Type
}

type valueBase struct {
	id  int
	typ Type
}

func (v *valueBase) ID() int    { return v.id }
func (v *valueBase) Type() Type { return v.typ }

// Param is one of a Function's formal parameters, materialized as a
// value at the entry block — the target-level counterpart of a
// cps.Param.
type Param struct {
	valueBase
	Name  string
	Index int
}

func (*Param) valueNode() {}

// Const is an integer constant, either an i64 (a lowered cps.I64, or
// an arithmetic result folded by Optimize) or an i8 (a lowered
// cps.Bool).
type Const struct {
	valueBase
	Val int64
}

func (*Const) valueNode() {}

// Phi is a block-entry phi node: one per Param of the corresponding
// cps.Block. Incoming is filled by the lowerer's phi-patching step
// (spec §4.7 step 6), not at CreatePhi time — a Phi always starts
// with zero incoming edges.
type Phi struct {
	valueBase
	Block    *Block
	Incoming []PhiEdge
}

func (*Phi) valueNode() {}

// PhiEdge records that control reaching a Phi's block From supplies
// Val as that phi's value.
type PhiEdge struct {
	From *Block
	Val  Value
}

// InstrOp names the arithmetic/comparison/cast/call instructions this
// backend emits. Branches and returns are Terminators, not Instrs —
// they end a Block rather than produce a value consumed within it
// (Call is the exception: it both calls and, when its continuation is
// a join Block, produces the value threaded into that join's phi).
type InstrOp int

const (
	OpAdd InstrOp = iota
	OpSub
	OpMul
	OpICmpEq
	OpZExt
	OpTrunc
	OpCall
)

func (op InstrOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpICmpEq:
		return "icmp_eq"
	case OpZExt:
		return "zext"
	case OpTrunc:
		return "trunc"
	case OpCall:
		return "call"
	default:
		return "?op"
	}
}

// Instr is a single non-terminator instruction materialized into a
// Block's body, in emission order.
type Instr struct {
	valueBase
	Op       InstrOp
	Operands []Value // Add/Sub/Mul/ICmpEq: [lhs, rhs]; ZExt/Trunc: [v]; Call: [callee's args...]
	Callee   *Function
}

func (*Instr) valueNode() {}

// Terminator ends a Block, naming the Blocks control may pass to
// next — the target-level counterpart of a cps.Transfer.
type Terminator interface {
	termNode()
	Successors() []*Block
}

// Br is an unconditional branch, lowered from a cps.Goto or from a
// cps.Call whose continuation is a join Block.
type Br struct {
	Dest *Block
}

func (*Br) termNode()             {}
func (b *Br) Successors() []*Block { return []*Block{b.Dest} }

// CondBr is lowered from a cps.If: Cond must be an i1 (the i8 boolean
// value is Trunc'd down to i1 immediately beforehand).
type CondBr struct {
	Cond        Value
	True, False *Block
}

func (*CondBr) termNode()              {}
func (c *CondBr) Successors() []*Block { return []*Block{c.True, c.False} }

// Ret ends a Function, lowered from a cps.Goto or cps.Call whose
// continuation is the Function's Return.
type Ret struct {
	Val Value
}

func (*Ret) termNode()              {}
func (*Ret) Successors() []*Block   { return nil }

// Block is a target basic block: phis at entry, a straight-line body,
// and a single terminator.
type Block struct {
	id    int
	Name  string
	Phis  []*Phi
	Body  []*Instr
	Term  Terminator
	Preds []*Block
}

// ID returns b's function-local block id, assigned in declaration
// order (dominator preorder).
func (b *Block) ID() int { return b.id }

// Function is one lowered cps.Fn: its declared signature, its Params
// (materialized entry-block values), and every Block reachable from
// Entry, stored in the order they were declared — dominator preorder,
// per spec §4.7 step 4, so a Block's immediate dominator always
// precedes it.
type Function struct {
	Name       string
	ParamTypes []Type
	ResultType Type
	Params     []*Param
	Entry      *Block
	Blocks     []*Block
}

// Signature renders fn's type as "(t0, t1) -> t2", matching
// types.Fn.String()'s register.
func (fn *Function) Signature() string {
	s := "("
	for i, t := range fn.ParamTypes {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s + ") -> " + fn.ResultType.String()
}

// Module is a whole lowered compilation unit: every externally
// visible Function, in the order internal/tocps declared them.
type Module struct {
	// TargetTriple names the compilation target, set from fnlc.yaml's
	// target_triple (internal/driver.Config) after lowering. It has
	// no effect on Sim's own emission today, but a future Emitter
	// keyed by it would switch codegen strategy on it the way a real
	// LLVM backend does; for now it travels with the module purely as
	// metadata the disassembly and JSON dumps surface.
	TargetTriple string
	Functions    []*Function
}

// FunctionByName looks up a Function by its declared name, used when
// lowering a Call to resolve its callee.
func (m *Module) FunctionByName(name string) (*Function, bool) {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

func valueRef(v Value) string {
	if v == nil {
		return "<nil>"
	}
	if p, ok := v.(*Param); ok {
		return fmt.Sprintf("%%%d(%s)", p.ID(), p.Name)
	}
	return fmt.Sprintf("%%%d", v.ID())
}
