package target

import "testing"

func TestVerifyRejectsMissingTerminator(t *testing.T) {
	em := NewSim()
	fn := em.DeclareFunction("f", []Type{I64}, I64)
	em.DeclareParam(fn, "x", 0, I64)
	em.DeclareBlock(fn, "entry")
	// entry's Term is left nil on purpose

	errs := Verify(em.Module())
	if len(errs) == 0 {
		t.Fatal("expected a LoweringError for a block with no terminator")
	}
}

func TestVerifyRejectsMismatchedPhiArity(t *testing.T) {
	em := NewSim()
	fn := em.DeclareFunction("f", []Type{I8}, I64)
	entry := em.DeclareBlock(fn, "entry")
	cond := em.DeclareParam(fn, "c", 0, I8)

	conseq := em.DeclareBlock(fn, "conseq")
	alt := em.DeclareBlock(fn, "alt")
	join := em.DeclareBlock(fn, "join")
	phi := em.CreatePhi(join, I64)

	i1 := em.Trunc(entry, cond, I1)
	em.CondBr(entry, i1, conseq, alt)

	em.Br(conseq, join)
	em.Br(alt, join)
	// Deliberately add only one incoming edge for two predecessors.
	em.AddIncoming(phi, conseq, em.ConstI64(1))
	em.Ret(join, phi)

	errs := Verify(em.Module())
	if len(errs) == 0 {
		t.Fatal("expected a LoweringError for a phi missing an incoming edge")
	}
}

func TestVerifyAcceptsWellFormedModule(t *testing.T) {
	em := NewSim()
	fn := em.DeclareFunction("id", []Type{I64}, I64)
	entry := em.DeclareBlock(fn, "entry")
	x := em.DeclareParam(fn, "x", 0, I64)
	em.Ret(entry, x)

	if errs := Verify(em.Module()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %s", errs[0].Format())
	}
}

func TestVerifyRejectsCallArityMismatch(t *testing.T) {
	em := NewSim()
	callee := em.DeclareFunction("id", []Type{I64}, I64)
	calleeEntry := em.DeclareBlock(callee, "entry")
	cx := em.DeclareParam(callee, "x", 0, I64)
	em.Ret(calleeEntry, cx)

	caller := em.DeclareFunction("bad", nil, I64)
	callerEntry := em.DeclareBlock(caller, "entry")
	result := em.Call(callerEntry, callee, nil) // id takes 1 arg, called with 0
	em.Ret(callerEntry, result)

	errs := Verify(em.Module())
	if len(errs) == 0 {
		t.Fatal("expected a LoweringError for a call arity mismatch")
	}
}
