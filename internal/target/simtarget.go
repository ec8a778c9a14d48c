package target

import (
	"fmt"
	"os"

	"github.com/brmh/fnlc/internal/errors"
)

// Sim is the one concrete Emitter this repository ships: a small
// in-memory SSA module, modeled on the teacher's own bytecode target
// representation (internal/bytecode/instruction.go, vm_core.go)
// rather than on real LLVM — no LLVM binding exists anywhere in the
// example pack, and fabricating a cgo dependency none of the examples
// use would violate "never fabricate dependencies". Sim has no
// runtime of its own: it exists to be built, verified, disassembled,
// and (in lieu of a real linker) dumped to a textual placeholder
// object file.
type Sim struct {
	mod    *Module
	nextID int
}

// NewSim returns an empty Sim.
func NewSim() *Sim {
	return &Sim{mod: &Module{}}
}

var _ Emitter = (*Sim)(nil)

func (s *Sim) nextValueID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Sim) DeclareFunction(name string, params []Type, result Type) *Function {
	fn := &Function{Name: name, ParamTypes: params, ResultType: result}
	s.mod.Functions = append(s.mod.Functions, fn)
	return fn
}

func (s *Sim) DeclareParam(fn *Function, name string, index int, typ Type) *Param {
	p := &Param{valueBase: valueBase{id: s.nextValueID(), typ: typ}, Name: name, Index: index}
	fn.Params = append(fn.Params, p)
	return p
}

func (s *Sim) DeclareBlock(fn *Function, name string) *Block {
	b := &Block{id: len(fn.Blocks), Name: name}
	fn.Blocks = append(fn.Blocks, b)
	if fn.Entry == nil {
		fn.Entry = b
	}
	return b
}

func (s *Sim) CreatePhi(block *Block, typ Type) *Phi {
	p := &Phi{valueBase: valueBase{id: s.nextValueID(), typ: typ}, Block: block}
	block.Phis = append(block.Phis, p)
	return p
}

func (s *Sim) AddIncoming(phi *Phi, from *Block, v Value) {
	phi.Incoming = append(phi.Incoming, PhiEdge{From: from, Val: v})
}

func (s *Sim) ConstI64(v int64) Value {
	return &Const{valueBase: valueBase{id: s.nextValueID(), typ: I64}, Val: v}
}

func (s *Sim) ConstI8(v int64) Value {
	return &Const{valueBase: valueBase{id: s.nextValueID(), typ: I8}, Val: v}
}

func (s *Sim) binOp(block *Block, op InstrOp, typ Type, a, b Value) Value {
	i := &Instr{valueBase: valueBase{id: s.nextValueID(), typ: typ}, Op: op, Operands: []Value{a, b}}
	block.Body = append(block.Body, i)
	return i
}

func (s *Sim) Add(block *Block, a, b Value) Value { return s.binOp(block, OpAdd, I64, a, b) }
func (s *Sim) Sub(block *Block, a, b Value) Value { return s.binOp(block, OpSub, I64, a, b) }
func (s *Sim) Mul(block *Block, a, b Value) Value { return s.binOp(block, OpMul, I64, a, b) }

func (s *Sim) ICmpEq(block *Block, a, b Value) Value {
	return s.binOp(block, OpICmpEq, I1, a, b)
}

func (s *Sim) ZExt(block *Block, v Value, to Type) Value {
	i := &Instr{valueBase: valueBase{id: s.nextValueID(), typ: to}, Op: OpZExt, Operands: []Value{v}}
	block.Body = append(block.Body, i)
	return i
}

func (s *Sim) Trunc(block *Block, v Value, to Type) Value {
	i := &Instr{valueBase: valueBase{id: s.nextValueID(), typ: to}, Op: OpTrunc, Operands: []Value{v}}
	block.Body = append(block.Body, i)
	return i
}

func (s *Sim) Call(block *Block, callee *Function, args []Value) Value {
	i := &Instr{valueBase: valueBase{id: s.nextValueID(), typ: callee.ResultType}, Op: OpCall, Operands: args, Callee: callee}
	block.Body = append(block.Body, i)
	return i
}

func (s *Sim) Br(block *Block, dest *Block)             { block.Term = &Br{Dest: dest} }
func (s *Sim) CondBr(block *Block, cond Value, t, f *Block) { block.Term = &CondBr{Cond: cond, True: t, False: f} }
func (s *Sim) Ret(block *Block, v Value)                { block.Term = &Ret{Val: v} }

func (s *Sim) Module() *Module { return s.mod }

func (s *Sim) VerifyModule() []*errors.CompilerError {
	return Verify(s.mod)
}

// SupportsLinking is always false: Sim is a debug-only stand-in for a
// real code generator, per spec §1's "final native-object emission...
// viewed as a single emit_object(module) call into an LLVM-like
// backend" — a true Emitter implementation does not exist in this
// repository's scope.
func (s *Sim) SupportsLinking() bool { return false }

// WriteObject writes a textual placeholder "object file": one
// disassembly line per function signature, per spec §9's note that
// real object emission and linking are external collaborators. It
// never produces something cc could actually link, which is why
// SupportsLinking reports false.
func (s *Sim) WriteObject(module *Module, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "; fnlc simtarget placeholder object (not linkable)")
	for _, fn := range module.Functions {
		fmt.Fprintf(f, "; extern %s %s\n", fn.Name, fn.Signature())
	}
	return nil
}
