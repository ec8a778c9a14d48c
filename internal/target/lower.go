package target

import (
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/doms"
	"github.com/brmh/fnlc/internal/schedule"
	"github.com/brmh/fnlc/internal/types"
)

// Lower translates every external function of prog into em, following
// spec §4.7 step by step: declare the function, schedule its body
// (internal/doms + internal/schedule), declare target blocks in
// dominator preorder and pre-create their phis, fill each block's
// body and terminator, then patch every phi's incoming edges.
func Lower(prog *cps.Program, em Emitter) *Module {
	// Declare every function's signature up front, in two passes,
	// mirroring internal/tocps.Convert's own declare-then-build split —
	// a call to a function declared later in source (including mutual
	// recursion) must resolve to an already-declared target Function.
	declared := make(map[*cps.Fn]*Function, len(prog.Externs))
	for _, fn := range prog.Externs {
		fnTy := types.Find(fn.Type()).(*types.Fn)
		declared[fn] = em.DeclareFunction(fn.Name().Hint(), LowerDomain(fnTy.Domain), LowerType(fnTy.Codomain))
	}

	for _, fn := range prog.Externs {
		lowerFn(fn, declared[fn], em)
	}
	return em.Module()
}

// predecessors builds the structural predecessor list of every Block
// reachable from fn's entry, via each Block's Transfer.Successors() —
// the same traversal internal/doms uses internally, duplicated here
// because the backend needs it keyed by *cps.Block rather than by
// postorder index.
func predecessors(fn *cps.Fn) map[*cps.Block][]*cps.Block {
	preds := make(map[*cps.Block][]*cps.Block)
	fn.PostVisitBlocks(func(b *cps.Block) {
		for _, succ := range b.Transfer.Successors() {
			if sb, ok := succ.AsBlock(); ok {
				preds[sb] = append(preds[sb], b)
			}
		}
	})
	return preds
}

// pendingIncoming records a phi edge discovered while lowering a
// predecessor's terminator, resolved once every block's body has been
// filled in (spec §4.7 step 6).
type pendingIncoming struct {
	phi  *Phi
	from *Block
	val  Value
}

func lowerFn(fn *cps.Fn, tfn *Function, em Emitter) {
	tree := doms.Build(fn)
	sched := schedule.Late(fn, tree)
	bucket := schedule.BucketByBlock(fn, sched)
	preds := predecessors(fn)
	preorder := tree.Preorder()

	blockOf := make(map[*cps.Block]*Block, len(preorder))
	valueOf := make(map[cps.Expr]Value)
	var pending []pendingIncoming

	// Step 4: declare every block (and its phis) in dominator
	// preorder before any body is filled, so a Goto/Call lowered
	// while filling an earlier block can always find its
	// destination's phis already allocated.
	for _, b := range preorder {
		tb := em.DeclareBlock(tfn, b.Name().String())
		blockOf[b] = tb

		if b == fn.Entry {
			for i, p := range b.Params {
				tp := em.DeclareParam(tfn, p.Name().String(), i, LowerType(p.Type()))
				valueOf[p] = tp
			}
			continue
		}
		if len(preds[b]) == 0 {
			continue // unreachable block; no predecessors to phi over
		}
		for _, p := range b.Params {
			phi := em.CreatePhi(tb, LowerType(p.Type()))
			valueOf[p] = phi
		}
	}

	// Step 5: fill bodies in the same preorder, so a shared Expr is
	// always materialized (and cached in valueOf) before any
	// dominated block can reference it.
	for _, b := range preorder {
		tb := blockOf[b]
		for _, e := range bucket[b] {
			if _, isParam := e.(*cps.Param); isParam {
				continue // already seeded above
			}
			valueOf[e] = lowerExpr(em, tb, e, valueOf)
		}
		pending = append(pending, lowerTransfer(em, tb, b, blockOf, valueOf)...)
	}

	// Step 6: patch every phi's incoming edges now that every
	// predecessor's terminator (and hence its supplied value) exists.
	for _, pi := range pending {
		em.AddIncoming(pi.phi, pi.from, pi.val)
	}

	for _, b := range tfn.Blocks {
		if b.Term == nil {
			continue
		}
		for _, succ := range b.Term.Successors() {
			succ.Preds = append(succ.Preds, b)
		}
	}
}

// lowerExpr emits the target instruction for one floating cps.Expr,
// referencing already-lowered operands from valueOf — sound because
// bucket order within a block is already topological (spec §4.6).
func lowerExpr(em Emitter, block *Block, e cps.Expr, valueOf map[cps.Expr]Value) Value {
	switch n := e.(type) {
	case *cps.Bool:
		v := int64(0)
		if n.Value {
			v = 1
		}
		return em.ConstI8(v)

	case *cps.I64:
		return em.ConstI64(n.Value)

	case *cps.PrimApp:
		lhs := valueOf[n.Args[0]]
		rhs := valueOf[n.Args[1]]
		switch n.Op {
		case cps.AddWI64:
			return em.Add(block, lhs, rhs)
		case cps.SubWI64:
			return em.Sub(block, lhs, rhs)
		case cps.MulWI64:
			return em.Mul(block, lhs, rhs)
		default: // cps.EqI64
			cmp := em.ICmpEq(block, lhs, rhs)
			return em.ZExt(block, cmp, I8)
		}

	case *cps.Fn:
		// A Fn referenced as a value (the callee of a Call) never
		// needs materializing as an instruction: lowerTransfer
		// resolves it to the target Function by name.
		return nil

	default:
		panic("target: unhandled cps.Expr in lowering")
	}
}

// lowerTransfer emits block's terminator and returns the phi edges it
// contributes to its successor(s), queued for the patching step.
func lowerTransfer(em Emitter, block *Block, b *cps.Block, blockOf map[*cps.Block]*Block, valueOf map[cps.Expr]Value) []pendingIncoming {
	switch t := b.Transfer.(type) {
	case *cps.If:
		cond := valueOf[t.Cond]
		i1 := em.Trunc(block, cond, I1)
		em.CondBr(block, i1, blockOf[t.Conseq], blockOf[t.Alt])
		return nil

	case *cps.Call:
		calleeFn := t.Callee().(*cps.Fn)
		calleeTarget := findFunction(em, calleeFn.Name().Hint())
		args := make([]Value, len(t.Args()))
		for i, a := range t.Args() {
			args[i] = valueOf[a]
		}
		result := em.Call(block, calleeTarget, args)

		if _, ok := t.Cont.(*cps.Return); ok {
			em.Ret(block, result)
			return nil
		}

		dest, _ := t.Cont.AsBlock()
		destTarget := blockOf[dest]
		em.Br(block, destTarget)
		return phiEdgesFor(destTarget, block, dest, result)

	case *cps.Goto:
		res := valueOf[t.Res]
		if _, ok := t.Dest.(*cps.Return); ok {
			em.Ret(block, res)
			return nil
		}
		dest, _ := t.Dest.AsBlock()
		destTarget := blockOf[dest]
		em.Br(block, destTarget)
		return phiEdgesFor(destTarget, block, dest, res)

	default:
		panic("target: unhandled cps.Transfer in lowering")
	}
}

// phiEdgesFor pairs dest's phis (one per dest's cps Params, in order)
// with val, the single argument every Goto/Call-to-join-block
// convention supplies (spec §4.4's "Goto supplies exactly one
// argument when dest has one parameter").
func phiEdgesFor(destTarget *Block, from *Block, dest *cps.Block, val Value) []pendingIncoming {
	if len(dest.Params) == 0 {
		return nil
	}
	return []pendingIncoming{{phi: destTarget.Phis[0], from: from, val: val}}
}

func findFunction(em Emitter, name string) *Function {
	fn, ok := em.Module().FunctionByName(name)
	if !ok {
		panic("target: call to undeclared function " + name)
	}
	return fn
}
