package target

import (
	"strings"
	"testing"

	"github.com/brmh/fnlc/internal/checker"
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/tocps"
	"github.com/brmh/fnlc/internal/types"
)

// compileProgram runs source through the front end and CPS
// conversion, the same helper shape internal/doms and
// internal/schedule's compile_test.go use, extended to return the
// whole cps.Program since Lower operates over every extern at once.
func compileProgram(t *testing.T, source string) *cps.Program {
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

	return tocps.Convert(checked, names, reg)
}

func lowerSource(t *testing.T, source string) *Module {
	t.Helper()
	prog := compileProgram(t, source)
	em := NewSim()
	m := Lower(prog, em)
	if errs := Verify(m); len(errs) > 0 {
		t.Fatalf("verify failed: %s", errs[0].Format())
	}
	return m
}

// TestIdentity exercises spec §8 scenario 1: a single-parameter
// function whose body is just that parameter, which should lower to
// one block ending in a bare ret.
func TestIdentity(t *testing.T) {
	m := lowerSource(t, `fun id(x : i64) : i64 { x }`)

	fn, ok := m.FunctionByName("id")
	if !ok {
		t.Fatal("function id not declared")
	}
	if len(fn.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(fn.Blocks))
	}
	ret, ok := fn.Entry.Term.(*Ret)
	if !ok {
		t.Fatalf("expected Ret terminator, got %T", fn.Entry.Term)
	}
	if ret.Val != Value(fn.Params[0]) {
		t.Fatalf("expected ret of the sole parameter, got %s", valueRef(ret.Val))
	}
}

// TestArithmeticSharing exercises spec §8 scenario 2: both
// __mulWI64(x, x) calls are the same CPS node, so lowering must emit
// exactly one mul instruction, not two.
func TestArithmeticSharing(t *testing.T) {
	m := lowerSource(t, `fun f(x : i64) : i64 { __addWI64(__mulWI64(x, x), __mulWI64(x, x)) }`)

	fn, _ := m.FunctionByName("f")
	var muls, adds int
	for _, b := range fn.Blocks {
		for _, inst := range b.Body {
			switch inst.Op {
			case OpMul:
				muls++
			case OpAdd:
				adds++
			}
		}
	}
	if muls != 1 {
		t.Fatalf("expected exactly 1 shared mul instruction, got %d", muls)
	}
	if adds != 1 {
		t.Fatalf("expected exactly 1 add instruction, got %d", adds)
	}
}

// TestConditionalJoin exercises spec §8 scenario 3: a diamond CFG
// whose join block's phi has exactly two incoming edges, one per
// predecessor.
func TestConditionalJoin(t *testing.T) {
	m := lowerSource(t, `
		fun abs(x : i64) : i64 {
			if __eqI64(x, 0) { 0 } else { x }
		}
	`)

	fn, _ := m.FunctionByName("abs")
	var join *Block
	for _, b := range fn.Blocks {
		if len(b.Phis) == 1 {
			join = b
		}
	}
	if join == nil {
		t.Fatal("no join block with a phi found")
	}
	if len(join.Phis[0].Incoming) != 2 {
		t.Fatalf("expected 2 incoming edges on the join phi, got %d", len(join.Phis[0].Incoming))
	}

	if _, ok := fn.Entry.Term.(*CondBr); !ok {
		t.Fatalf("expected entry to end in a CondBr, got %T", fn.Entry.Term)
	}
}

// TestLetBindingSharesNode exercises spec §8 scenario 4: the CPS Id
// for "y" resolves to exactly the AddWI64 node, so it is materialized
// once and referenced twice by the mul.
func TestLetBindingSharesNode(t *testing.T) {
	m := lowerSource(t, `
		fun g(x : i64) : i64 {
			val y = __addWI64(x, 1);
			__mulWI64(y, y)
		}
	`)

	fn, _ := m.FunctionByName("g")
	var adds int
	var mulInst *Instr
	for _, b := range fn.Blocks {
		for _, inst := range b.Body {
			if inst.Op == OpAdd {
				adds++
			}
			if inst.Op == OpMul {
				mulInst = inst
			}
		}
	}
	if adds != 1 {
		t.Fatalf("expected 1 add instruction for the let binding, got %d", adds)
	}
	if mulInst == nil {
		t.Fatal("expected a mul instruction")
	}
	if mulInst.Operands[0].ID() != mulInst.Operands[1].ID() {
		t.Fatalf("expected mul's two operands to be the same shared value, got %%%d and %%%d",
			mulInst.Operands[0].ID(), mulInst.Operands[1].ID())
	}
}

// TestCallInsideIf exercises spec §8 scenario 5: h's body converts
// under a trivialCont pointing straight at h's own Return (it is
// never named by a Val), so both branches' calls feed that Return
// directly and lower to a Ret, not a Br into a join — there is no
// join block here at all, only h's entry splitting into two tail
// calls.
func TestCallInsideIf(t *testing.T) {
	m := lowerSource(t, `
		fun id(x : i64) : i64 { x }
		fun g(x : i64) : i64 {
			val y = __addWI64(x, 1);
			__mulWI64(y, y)
		}
		fun h(b : bool, x : i64) : i64 {
			if b { id(x) } else { g(x) }
		}
	`)

	fn, ok := m.FunctionByName("h")
	if !ok {
		t.Fatal("function h not declared")
	}

	condBr, ok := fn.Entry.Term.(*CondBr)
	if !ok {
		t.Fatalf("expected entry to end in CondBr, got %T", fn.Entry.Term)
	}

	for _, branch := range []*Block{condBr.True, condBr.False} {
		ret, ok := branch.Term.(*Ret)
		if !ok {
			t.Fatalf("expected branch %s to end in a Ret of its tail call's result, got %T", branch.Name, branch.Term)
		}
		if len(branch.Body) == 0 || branch.Body[len(branch.Body)-1].Op != OpCall {
			t.Fatalf("expected branch %s to end its body with a call", branch.Name)
		}
		if ret.Val != Value(branch.Body[len(branch.Body)-1]) {
			t.Fatalf("expected branch %s to return its call's result", branch.Name)
		}
	}
}

// TestTypeClashDiagnostic exercises spec §8 scenario 6: a body whose
// type disagrees with its declared codomain fails type checking, not
// lowering.
func TestTypeClashDiagnostic(t *testing.T) {
	names := ident.New()
	reg := types.NewRegistry(names)
	source := `fun bad() : i64 { True }`

	p := srcast.New("test.fnlc", source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse error: %s", errs[0].Format())
	}

	_, err := checker.Check(prog, names, reg, source)
	if err == nil {
		t.Fatal("expected a TypeError for bad()'s body")
	}
	if !strings.Contains(err.Format(), "TypeError") {
		t.Fatalf("expected a TypeError, got %q", err.Format())
	}
}
