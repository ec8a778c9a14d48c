package tocps

import (
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/fast"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/types"
)

// Convert lowers a checked fast.Program into a cps.Program: every
// FunDef becomes a cps.Fn whose body is converted under a trivialCont
// pointing at the Fn's own Return.
//
// Conversion happens in two passes over prog.Defs so that mutually
// recursive calls resolve: the first pass mints every Fn's Return
// continuation and its types.Fn (so a Call converted while building
// def A can already look up def B's Fn by name), and only the second
// pass builds each Fn's entry Block and converts its Body.
func Convert(prog *fast.Program, names *ident.Interner, reg *types.Registry) *cps.Program {
	b := cps.NewBuilder(names, reg)

	for _, def := range prog.Defs {
		fd := def.(*fast.FunDef)
		fnTy := reg.Fn(fd.Domain(), fd.Codomain)
		ret := b.Return(names.Fresh())
		b.Fn(fd.Span(), fd.Name, fnTy, true, ret, nil)
	}

	for _, def := range prog.Defs {
		fd := def.(*fast.FunDef)
		fn := b.GetFn(fd.Name)

		entry := b.Block(len(fd.Params), nil)
		for i, param := range fd.Params {
			b.Param(param.Span, param.Type, entry, param.Name, i)
		}
		fn.Entry = entry

		b.SetCurrentBlock(entry)
		convert(b, fd.Body, &trivialCont{target: fn.Ret}, ident.Name{}, false)
	}

	return b.Build()
}

// convert lowers e under continuation k. hint/hasHint name the Name
// the parameter of a freshly allocated If join block should use,
// carried down from the nearest enclosing Val's pattern, so the join's
// parameter is named after the identifier it's producing a value for
// rather than an anonymous fresh name. The join block itself always
// gets a fresh name.
func convert(b *cps.Builder, e fast.Expr, k cont, hint ident.Name, hasHint bool) cps.Expr {
	switch n := e.(type) {
	case *fast.Id:
		return k.apply(b, n.Span(), b.ID(n.Name))

	case *fast.Bool:
		return k.apply(b, n.Span(), b.ConstBool(n.Span(), b.Names().Fresh(), n.Type(), n.Value))

	case *fast.I64:
		return k.apply(b, n.Span(), b.ConstI64(n.Span(), b.Names().Fresh(), n.Type(), n.Value))

	case *fast.PrimApp:
		lhs := convert(b, n.Args[0], &nextCont{}, ident.Name{}, false)
		rhs := convert(b, n.Args[1], &nextCont{}, ident.Name{}, false)
		args := [2]cps.Expr{lhs, rhs}
		name := b.Names().Fresh()

		var result cps.Expr
		switch n.Op {
		case fast.AddWI64:
			result = b.AddWI64(n.Span(), name, n.Type(), args)
		case fast.SubWI64:
			result = b.SubWI64(n.Span(), name, n.Type(), args)
		case fast.MulWI64:
			result = b.MulWI64(n.Span(), name, n.Type(), args)
		default: // fast.EqI64
			result = b.EqI64Op(n.Span(), name, n.Type(), args)
		}
		return k.apply(b, n.Span(), result)

	case *fast.If:
		return convertIf(b, n, k, hint, hasHint)

	case *fast.Call:
		return convertCall(b, n, k)

	case *fast.Block:
		for _, stmt := range n.Stmts {
			convertStmt(b, stmt)
		}
		return convert(b, n.Body, k, hint, hasHint)

	default:
		panic("tocps: unhandled fast.Expr")
	}
}

// convertStmt converts a Val's bound expression under a nextCont
// carrying the pattern's own Name as both the binding hint and the
// join-naming hint, so a Val binding a Call's or an If's result names
// that join block's parameter after the bound identifier rather than a
// fresh anonymous name.
func convertStmt(b *cps.Builder, s fast.Stmt) {
	val := s.(*fast.Val)
	idPat, _ := fast.AsID(val.Pat)
	convert(b, val.ValExpr, &nextCont{hint: idPat.Name, hasHint: true}, idPat.Name, true)
}

// convertIf converts a conditional. If k is already trivial (a
// terminator, not a value-producing join), both arms convert directly
// under k and If produces no result of its own — control never
// returns to the caller of convertIf. Otherwise a join Block is
// allocated to receive whichever arm runs; its parameter is named via
// hint (the enclosing Val's hint, if any) and returned directly rather
// than routed back through k.apply.
func convertIf(b *cps.Builder, n *fast.If, k cont, hint ident.Name, hasHint bool) cps.Expr {
	cond := convert(b, n.Cond, &nextCont{}, ident.Name{}, false)

	condBlock := b.CurrentBlock()
	conseqBlock := b.Block(0, nil)
	altBlock := b.Block(0, nil)
	condBlock.Transfer = b.If(n.Span(), cond, conseqBlock, altBlock)

	if k.isTrivial() {
		b.SetCurrentBlock(conseqBlock)
		convert(b, n.Conseq, k, ident.Name{}, false)
		b.SetCurrentBlock(altBlock)
		convert(b, n.Alt, k, ident.Name{}, false)
		return nil
	}

	join := b.Block(1, nil)
	name := hintOrFresh(b, hint, hasHint)
	result := b.Param(n.Span(), n.Type(), join, name, 0)
	joinCont := &trivialCont{target: join}

	b.SetCurrentBlock(conseqBlock)
	convert(b, n.Conseq, joinCont, ident.Name{}, false)
	b.SetCurrentBlock(altBlock)
	convert(b, n.Alt, joinCont, ident.Name{}, false)

	b.SetCurrentBlock(join)
	return result
}

// convertCall converts the callee and every argument under hint-less
// nextConts (each one evaluated for its own value only, left-to-right)
// and hands the resulting operand list to k.callTo, which decides
// whether that means a fresh join block (nextCont) or a direct Call
// terminator into an existing continuation (trivialCont).
func convertCall(b *cps.Builder, n *fast.Call, k cont) cps.Expr {
	exprs := make([]cps.Expr, 0, 1+len(n.Args))
	exprs = append(exprs, convert(b, n.Callee, &nextCont{}, ident.Name{}, false))
	for _, arg := range n.Args {
		exprs = append(exprs, convert(b, arg, &nextCont{}, ident.Name{}, false))
	}
	return k.callTo(b, n, exprs)
}
