package target

// Optimize rewrites every function of mod in place, modeled on the
// teacher's chunkOptimizer (internal/bytecode/optimizer.go): a fixed
// pipeline of independent passes, run to a fixpoint rather than just
// once, since folding a constant can make a downstream instruction
// dead and removing a dead instruction can expose a fold that was
// blocked by an intervening use. It runs only when fnlc.yaml's
// optimize flag (internal/driver.Config.Optimize) is set — Sim's
// unoptimized output is what every other dump-* subcommand and test
// in this repository asserts against, so folding must stay opt-in.
func Optimize(mod *Module) {
	for _, fn := range mod.Functions {
		for {
			changed := foldConstants(fn)
			changed = eliminateDeadInstrs(fn) || changed
			if !changed {
				break
			}
		}
	}
}

// foldConstants replaces every Add/Sub/Mul instruction whose two
// operands are already Const values with a single Const carrying the
// computed result, rewriting every other reference to the folded
// instruction in place.
func foldConstants(fn *Function) bool {
	changed := false
	for _, b := range fn.Blocks {
		kept := b.Body[:0]
		for _, inst := range b.Body {
			if folded, ok := foldInstr(inst); ok {
				replaceValue(fn, inst, folded)
				changed = true
				continue
			}
			kept = append(kept, inst)
		}
		b.Body = kept
	}
	return changed
}

func foldInstr(inst *Instr) (*Const, bool) {
	switch inst.Op {
	case OpAdd, OpSub, OpMul:
	default:
		return nil, false
	}
	lhs, ok := inst.Operands[0].(*Const)
	if !ok {
		return nil, false
	}
	rhs, ok := inst.Operands[1].(*Const)
	if !ok {
		return nil, false
	}

	var v int64
	switch inst.Op {
	case OpAdd:
		v = lhs.Val + rhs.Val
	case OpSub:
		v = lhs.Val - rhs.Val
	case OpMul:
		v = lhs.Val * rhs.Val
	}
	return &Const{valueBase: valueBase{id: inst.id, typ: inst.typ}, Val: v}, true
}

// replaceValue substitutes replacement for every occurrence of old
// across fn's instruction operands, phi incoming edges, and
// terminators.
func replaceValue(fn *Function, old, replacement Value) {
	sub := func(v Value) Value {
		if v == old {
			return replacement
		}
		return v
	}
	for _, b := range fn.Blocks {
		for _, inst := range b.Body {
			for i, op := range inst.Operands {
				inst.Operands[i] = sub(op)
			}
		}
		for _, phi := range b.Phis {
			for i := range phi.Incoming {
				phi.Incoming[i].Val = sub(phi.Incoming[i].Val)
			}
		}
		switch t := b.Term.(type) {
		case *Ret:
			t.Val = sub(t.Val)
		case *CondBr:
			t.Cond = sub(t.Cond)
		}
	}
}

// eliminateDeadInstrs removes every non-call instruction with no
// remaining uses. Calls are never removed — they may have effects a
// pure arithmetic/cast instruction never does.
func eliminateDeadInstrs(fn *Function) bool {
	used := make(map[Value]bool)
	mark := func(v Value) {
		if v != nil {
			used[v] = true
		}
	}
	for _, b := range fn.Blocks {
		for _, inst := range b.Body {
			for _, op := range inst.Operands {
				mark(op)
			}
		}
		for _, phi := range b.Phis {
			for _, e := range phi.Incoming {
				mark(e.Val)
			}
		}
		switch t := b.Term.(type) {
		case *Ret:
			mark(t.Val)
		case *CondBr:
			mark(t.Cond)
		}
	}

	changed := false
	for _, b := range fn.Blocks {
		kept := b.Body[:0]
		for _, inst := range b.Body {
			if inst.Op != OpCall && !used[inst] {
				changed = true
				continue
			}
			kept = append(kept, inst)
		}
		b.Body = kept
	}
	return changed
}
