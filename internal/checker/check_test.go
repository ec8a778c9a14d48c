package checker

import (
	"strings"
	"testing"

	"github.com/brmh/fnlc/internal/errors"
	"github.com/brmh/fnlc/internal/fast"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/types"
)

func checkSource(t *testing.T, source string) (*fast.Program, *errors.CompilerError) {
	t.Helper()
	names := ident.New()
	reg := types.NewRegistry(names)

	p := srcast.New("test.fnlc", source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}

	return Check(prog, names, reg, source)
}

func TestCheckAcceptsIdentity(t *testing.T) {
	if _, err := checkSource(t, `fun id(x : i64) : i64 { x }`); err != nil {
		t.Fatalf("expected identity to check, got %v", err.Format())
	}
}

func TestCheckForwardReference(t *testing.T) {
	source := `
		fun isEven(n : i64) : bool { if __eqI64(n, 0) { True } else { isOdd(__subWI64(n, 1)) } }
		fun isOdd(n : i64) : bool { if __eqI64(n, 0) { False } else { isEven(__subWI64(n, 1)) } }
	`
	if _, err := checkSource(t, source); err != nil {
		t.Fatalf("expected mutually recursive definitions to check, got %v", err.Format())
	}
}

func TestCheckRejectsCodomainMismatch(t *testing.T) {
	_, err := checkSource(t, `fun bad() : i64 { True }`)
	if err == nil {
		t.Fatal("expected a TypeError for a bool body against an i64 codomain")
	}
	if !strings.Contains(err.Format(), "TypeError") {
		t.Fatalf("expected a TypeError, got %v", err.Format())
	}
}

func TestCheckRejectsUnboundIdentifier(t *testing.T) {
	_, err := checkSource(t, `fun f() : i64 { y }`)
	if err == nil {
		t.Fatal("expected a TypeError for an unbound identifier")
	}
	if !strings.Contains(err.Format(), "unbound identifier") {
		t.Fatalf("expected an unbound-identifier message, got %v", err.Format())
	}
}

func TestCheckRejectsArityMismatch(t *testing.T) {
	source := `
		fun add(x : i64, y : i64) : i64 { __addWI64(x, y) }
		fun bad() : i64 { add(1) }
	`
	_, err := checkSource(t, source)
	if err == nil {
		t.Fatal("expected a TypeError for a call with too few arguments")
	}
	if !strings.Contains(err.Format(), "expected 2 argument") {
		t.Fatalf("expected an arity-mismatch message, got %v", err.Format())
	}
}
