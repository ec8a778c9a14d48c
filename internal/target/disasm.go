package target

import (
	"fmt"
	"io"
	"strings"
)

// Disassembler prints a target Module the way the teacher's
// internal/bytecode.Disassembler prints a Chunk: one function at a
// time, block by block, one instruction per line.
type Disassembler struct {
	w io.Writer
}

// NewDisassembler returns a Disassembler writing to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// Disassemble prints every function in m, preceded by its target
// triple header when one was set, mirroring LLVM IR's own
// "target triple = ..." module line.
func (d *Disassembler) Disassemble(m *Module) {
	if m.TargetTriple != "" {
		fmt.Fprintf(d.w, "target triple = %q\n\n", m.TargetTriple)
	}
	for _, fn := range m.Functions {
		d.disassembleFn(fn)
	}
}

// String renders m's full disassembly, the form the dump-target CLI
// subcommand prints.
func (m *Module) String() string {
	var sb strings.Builder
	NewDisassembler(&sb).Disassemble(m)
	return sb.String()
}

func (d *Disassembler) disassembleFn(fn *Function) {
	fmt.Fprintf(d.w, "== %s %s ==\n", fn.Name, fn.Signature())
	for _, b := range fn.Blocks {
		d.disassembleBlock(b)
	}
	fmt.Fprintln(d.w)
}

func (d *Disassembler) disassembleBlock(b *Block) {
	fmt.Fprintf(d.w, "%s:", blockLabel(b))
	if len(b.Preds) > 0 {
		names := make([]string, len(b.Preds))
		for i, p := range b.Preds {
			names[i] = blockLabel(p)
		}
		fmt.Fprintf(d.w, "  ; preds = %s", strings.Join(names, ", "))
	}
	fmt.Fprintln(d.w)

	for _, phi := range b.Phis {
		fmt.Fprintf(d.w, "  %%%d = phi %s %s\n", phi.ID(), phi.Type(), formatIncoming(phi.Incoming))
	}
	for _, inst := range b.Body {
		fmt.Fprintf(d.w, "  %s\n", formatInstr(inst))
	}
	fmt.Fprintf(d.w, "  %s\n", formatTerm(b.Term))
}

func blockLabel(b *Block) string {
	if b.Name == "" {
		return fmt.Sprintf("bb%d", b.ID())
	}
	return b.Name
}

func formatIncoming(edges []PhiEdge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = fmt.Sprintf("[%s, %s]", valueRef(e.Val), blockLabel(e.From))
	}
	return strings.Join(parts, ", ")
}

func formatInstr(inst *Instr) string {
	switch inst.Op {
	case OpZExt, OpTrunc:
		return fmt.Sprintf("%%%d = %s %s to %s", inst.ID(), inst.Op, valueRef(inst.Operands[0]), inst.Type())
	case OpCall:
		args := make([]string, len(inst.Operands))
		for i, a := range inst.Operands {
			args[i] = valueRef(a)
		}
		return fmt.Sprintf("%%%d = call %s(%s)", inst.ID(), inst.Callee.Name, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("%%%d = %s %s %s, %s", inst.ID(), inst.Op, inst.Type(), valueRef(inst.Operands[0]), valueRef(inst.Operands[1]))
	}
}

func formatTerm(t Terminator) string {
	switch n := t.(type) {
	case *Br:
		return fmt.Sprintf("br %s", blockLabel(n.Dest))
	case *CondBr:
		return fmt.Sprintf("br %s, %s, %s", valueRef(n.Cond), blockLabel(n.True), blockLabel(n.False))
	case *Ret:
		return fmt.Sprintf("ret %s", valueRef(n.Val))
	default:
		return "<?term>"
	}
}
