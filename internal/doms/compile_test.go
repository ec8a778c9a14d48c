package doms

import (
	"testing"

	"github.com/brmh/fnlc/internal/checker"
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/tocps"
	"github.com/brmh/fnlc/internal/types"
)

// compile runs source through the front end and CPS conversion,
// returning the named top-level Fn.
func compile(t *testing.T, source, fnName string) *cps.Fn {
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

	cpsProg := tocps.Convert(checked, names, reg)
	for _, fn := range cpsProg.Externs {
		spelling, _ := names.Spelling(fn.Name())
		if spelling == fnName {
			return fn
		}
	}

	t.Fatalf("no function named %q in compiled program", fnName)
	return nil
}
