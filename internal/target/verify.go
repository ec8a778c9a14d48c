package target

import (
	"fmt"

	"github.com/brmh/fnlc/internal/errors"
	"github.com/brmh/fnlc/internal/lexer"
)

// Verify runs the structural checks spec §4.7 asks of a module in
// lieu of llvm::verifyFunction: every block ends in exactly one
// terminator, every phi's incoming list is exactly its block's
// predecessor list (spec §8's "Phi correctness" property), and every
// call targets a function of matching arity. A LoweringError should
// be unreachable given correct construction (spec §7) — Verify exists
// to catch a lowering bug before it reaches an Emitter that assumes a
// well-formed module.
func Verify(m *Module) []*errors.CompilerError {
	var errs []*errors.CompilerError
	report := func(format string, args ...any) {
		errs = append(errs, errors.New(errors.Lowering, lexer.Span{}, fmt.Sprintf(format, args...), ""))
	}

	for _, fn := range m.Functions {
		if fn.Entry == nil {
			report("function %s has no entry block", fn.Name)
			continue
		}

		structuralPreds := structuralPredecessors(fn)

		for _, b := range fn.Blocks {
			if b.Term == nil {
				report("function %s: block %s has no terminator", fn.Name, b.Name)
				continue
			}

			want := structuralPreds[b]
			if b == fn.Entry {
				if len(b.Phis) != 0 {
					report("function %s: entry block %s has phis", fn.Name, b.Name)
				}
				continue
			}
			if len(want) == 0 {
				continue // unreachable block kept for diagnostics; nothing to check
			}
			for _, phi := range b.Phis {
				if len(phi.Incoming) != len(want) {
					report("function %s: block %s phi %%%d has %d incoming edge(s), want %d (one per predecessor)",
						fn.Name, b.Name, phi.ID(), len(phi.Incoming), len(want))
					continue
				}
				seen := make(map[*Block]bool, len(phi.Incoming))
				for _, edge := range phi.Incoming {
					seen[edge.From] = true
				}
				for _, p := range want {
					if !seen[p] {
						report("function %s: block %s phi %%%d missing incoming edge from predecessor %s",
							fn.Name, b.Name, phi.ID(), p.Name)
					}
				}
			}
		}

		for _, b := range fn.Blocks {
			for _, inst := range b.Body {
				if inst.Op != OpCall {
					continue
				}
				if len(inst.Operands) != len(inst.Callee.ParamTypes) {
					report("function %s: call to %s passes %d argument(s), want %d",
						fn.Name, inst.Callee.Name, len(inst.Operands), len(inst.Callee.ParamTypes))
				}
			}
		}
	}

	return errs
}

// structuralPredecessors derives each block's predecessor list from
// every other block's terminator successors — the ground truth spec
// §8's phi-correctness property is checked against, independent of
// whatever predecessor bookkeeping the lowerer itself did.
func structuralPredecessors(fn *Function) map[*Block][]*Block {
	preds := make(map[*Block][]*Block)
	for _, b := range fn.Blocks {
		if b.Term == nil {
			continue
		}
		for _, succ := range b.Term.Successors() {
			preds[succ] = append(preds[succ], b)
		}
	}
	return preds
}
