package tocps

import (
	"testing"

	"github.com/brmh/fnlc/internal/checker"
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/types"
)

// convertSource runs source through the front end and Convert, the
// same helper shape internal/target/lower_test.go's compileProgram
// uses, stopping one stage earlier since this package only cares
// about the cps.Program Convert itself produces.
func convertSource(t *testing.T, source string) *cps.Program {
	t.Helper()
	names := ident.New()
	reg := types.NewRegistry(names)

	p := srcast.New("test.fnlc", source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse error: %s", errs[0].Format())
	}

	checked, err := checker.Check(prog, names, reg, source)
	if err != nil {
		t.Fatalf("check error: %s", err.Format())
	}

	return Convert(checked, names, reg)
}

func fnByName(t *testing.T, prog *cps.Program, name string) *cps.Fn {
	t.Helper()
	for _, fn := range prog.Externs {
		if fn.Name().Hint() == name {
			return fn
		}
	}
	t.Fatalf("no extern named %s", name)
	return nil
}

func countBlocks(fn *cps.Fn) int {
	n := 0
	fn.PostVisitBlocks(func(*cps.Block) { n++ })
	return n
}

// TestConvertIdentityGotosReturnDirectly exercises trivialCont.apply:
// a bare parameter reference under the Fn's own Return continuation
// lowers to a single Goto straight into Ret, with no extra block.
func TestConvertIdentityGotosReturnDirectly(t *testing.T) {
	prog := convertSource(t, `fun id(x : i64) : i64 { x }`)
	fn := fnByName(t, prog, "id")

	if got := countBlocks(fn); got != 1 {
		t.Fatalf("expected 1 block, got %d", got)
	}

	g, ok := fn.Entry.Transfer.(*cps.Goto)
	if !ok {
		t.Fatalf("expected entry to end in a Goto, got %T", fn.Entry.Transfer)
	}
	if g.Dest != cps.Cont(fn.Ret) {
		t.Fatal("expected the Goto's destination to be the Fn's own Return")
	}
	if g.Res != cps.Expr(fn.Entry.Params[0]) {
		t.Fatal("expected the Goto to carry the sole parameter")
	}
}

// TestConvertLetBindingSharesNode exercises the Builder's
// Define/ID cache, which is what makes a Val binding's two later
// references to "y" resolve to the exact same PrimApp node rather
// than two equal-but-distinct ones.
func TestConvertLetBindingSharesNode(t *testing.T) {
	prog := convertSource(t, `
		fun f(x : i64) : i64 {
			val y = __addWI64(x, 1);
			__mulWI64(y, y)
		}
	`)
	fn := fnByName(t, prog, "f")

	g, ok := fn.Entry.Transfer.(*cps.Goto)
	if !ok {
		t.Fatalf("expected entry to end in a Goto, got %T", fn.Entry.Transfer)
	}
	mul, ok := g.Res.(*cps.PrimApp)
	if !ok || mul.Op != cps.MulWI64 {
		t.Fatalf("expected the Goto to carry a mulWI64 PrimApp, got %T", g.Res)
	}
	if mul.Args[0] != mul.Args[1] {
		t.Fatal("expected both operands of the mul to be the exact same node")
	}
	add, ok := mul.Args[0].(*cps.PrimApp)
	if !ok || add.Op != cps.AddWI64 {
		t.Fatalf("expected the shared operand to be the addWI64 PrimApp, got %T", mul.Args[0])
	}
}

// TestConvertIfUnderTrivialContAllocatesNoJoin exercises convertIf's
// fast path: when the enclosing continuation is already trivial (the
// if is in tail position), both arms convert directly under it and no
// join block is allocated — only entry, conseq, and alt exist.
func TestConvertIfUnderTrivialContAllocatesNoJoin(t *testing.T) {
	prog := convertSource(t, `
		fun f(c : bool, x : i64) : i64 {
			if c { __addWI64(x, 1) } else { __subWI64(x, 1) }
		}
	`)
	fn := fnByName(t, prog, "f")

	if got := countBlocks(fn); got != 3 {
		t.Fatalf("expected 3 blocks (entry, conseq, alt) with no join, got %d", got)
	}

	cond, ok := fn.Entry.Transfer.(*cps.If)
	if !ok {
		t.Fatalf("expected entry to end in an If, got %T", fn.Entry.Transfer)
	}
	for _, branch := range []*cps.Block{cond.Conseq, cond.Alt} {
		g, ok := branch.Transfer.(*cps.Goto)
		if !ok {
			t.Fatalf("expected branch to end in a Goto straight to Return, got %T", branch.Transfer)
		}
		if g.Dest != cps.Cont(fn.Ret) {
			t.Fatal("expected branch's Goto to target the Fn's own Return, not a join")
		}
	}
}

// TestConvertIfUnderNonTrivialContAllocatesNamedJoin exercises
// convertIf's join-allocating path: binding an if's result with a Val
// forces a nextCont, so a one-parameter join block is allocated whose
// parameter is named after the binding, and both arms Goto into it
// instead of Return.
func TestConvertIfUnderNonTrivialContAllocatesNamedJoin(t *testing.T) {
	prog := convertSource(t, `
		fun f(c : bool) : i64 {
			val y = if c { 1 } else { 2 };
			y
		}
	`)
	fn := fnByName(t, prog, "f")

	if got := countBlocks(fn); got != 4 {
		t.Fatalf("expected 4 blocks (entry, conseq, alt, join), got %d", got)
	}

	cond, ok := fn.Entry.Transfer.(*cps.If)
	if !ok {
		t.Fatalf("expected entry to end in an If, got %T", fn.Entry.Transfer)
	}

	var join *cps.Block
	for _, branch := range []*cps.Block{cond.Conseq, cond.Alt} {
		g, ok := branch.Transfer.(*cps.Goto)
		if !ok {
			t.Fatalf("expected branch to end in a Goto, got %T", branch.Transfer)
		}
		dest, ok := g.Dest.AsBlock()
		if !ok {
			t.Fatal("expected branch's Goto to target a join Block, not Return")
		}
		if join == nil {
			join = dest
		} else if join != dest {
			t.Fatal("expected both branches to Goto the same join block")
		}
	}
	if len(join.Params) != 1 {
		t.Fatalf("expected the join block to have exactly 1 param, got %d", len(join.Params))
	}
	if join.Params[0].Name().Hint() != "y" {
		t.Fatalf("expected the join block's param to be named after the binding, got %q", join.Params[0].Name().String())
	}
}

// TestConvertCallUnderNextContAllocatesJoin exercises
// nextCont.callTo: a non-tail call (its result feeds another
// expression) allocates a fresh one-parameter join block and
// terminates the current block with a Call into it.
func TestConvertCallUnderNextContAllocatesJoin(t *testing.T) {
	prog := convertSource(t, `
		fun g(x : i64) : i64 { x }
		fun f(x : i64) : i64 { __addWI64(g(x), 1) }
	`)
	fn := fnByName(t, prog, "f")

	call, ok := fn.Entry.Transfer.(*cps.Call)
	if !ok {
		t.Fatalf("expected entry to end in a Call, got %T", fn.Entry.Transfer)
	}
	dest, ok := call.Cont.AsBlock()
	if !ok {
		t.Fatal("expected the call's continuation to be a join Block, not Return")
	}
	if len(dest.Params) != 1 {
		t.Fatalf("expected the join block to have exactly 1 param, got %d", len(dest.Params))
	}

	add, ok := dest.Transfer.(*cps.Goto)
	if !ok {
		t.Fatalf("expected the join block to end in a Goto back to Return, got %T", dest.Transfer)
	}
	sum, ok := add.Res.(*cps.PrimApp)
	if !ok || sum.Op != cps.AddWI64 {
		t.Fatalf("expected the join to carry an addWI64 PrimApp, got %T", add.Res)
	}
	if sum.Args[0] != cps.Expr(dest.Params[0]) {
		t.Fatal("expected the add's first operand to be the call's result param")
	}
}

// TestConvertCallUnderTrivialContCallsDirectly exercises
// trivialCont.callTo: a tail call writes a Call terminator straight
// into the enclosing continuation, allocating no join block at all.
func TestConvertCallUnderTrivialContCallsDirectly(t *testing.T) {
	prog := convertSource(t, `
		fun g(x : i64) : i64 { x }
		fun f(x : i64) : i64 { g(x) }
	`)
	fn := fnByName(t, prog, "f")

	if got := countBlocks(fn); got != 1 {
		t.Fatalf("expected 1 block, got %d", got)
	}
	call, ok := fn.Entry.Transfer.(*cps.Call)
	if !ok {
		t.Fatalf("expected entry to end in a Call, got %T", fn.Entry.Transfer)
	}
	if call.Cont != cps.Cont(fn.Ret) {
		t.Fatal("expected the tail call's continuation to be the Fn's own Return")
	}
}
