package schedule

import (
	"strings"
	"testing"

	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/doms"
)

func TestLatePlacesSharedValueAtEntry(t *testing.T) {
	fn := compile(t, `
		fun f(x: i64): i64 {
			val y = __addWI64(x, x);
			if __eqI64(y, 0) {
				y
			} else {
				__mulWI64(y, y)
			}
		}
	`, "f")

	tree := doms.Build(fn)
	sched := Late(fn, tree)

	entry := fn.Entry
	succs := entry.Transfer.Successors()
	conseq, _ := succs[0].AsBlock()
	alt, _ := succs[1].AsBlock()

	cond := entry.Transfer.(*cps.If).Cond
	condDef, ok := cond.(*cps.PrimApp)
	if !ok {
		t.Fatalf("expected the branch condition to be a PrimApp")
	}
	y := condDef.Args[0]

	yBlock, ok := sched.BlockOf(y)
	if !ok {
		t.Fatalf("expected y to be scheduled")
	}
	if yBlock != entry {
		t.Errorf("expected y (used in both branches) to float up to entry, got %v", yBlock)
	}

	altGoto, ok := alt.Transfer.(*cps.Goto)
	if !ok {
		t.Fatalf("expected the alt block to end in a Goto")
	}
	z := altGoto.Res
	zBlock, ok := sched.BlockOf(z)
	if !ok {
		t.Fatalf("expected z to be scheduled")
	}
	if zBlock != alt {
		t.Errorf("expected z (used only in the alt branch) to stay in alt, got %v", zBlock)
	}

	conseqGoto, ok := conseq.Transfer.(*cps.Goto)
	if !ok {
		t.Fatalf("expected the conseq block to end in a Goto")
	}
	if conseqGoto.Res != y {
		t.Errorf("expected the conseq block's result to be y itself")
	}
}

func TestFormatFnRendersEveryBlock(t *testing.T) {
	fn := compile(t, `
		fun abs(x: i64): i64 {
			if __eqI64(x, 0) {
				0
			} else {
				__subWI64(0, x)
			}
		}
	`, "abs")

	tree := doms.Build(fn)
	sched := Late(fn, tree)

	out := FormatFn(fn, tree, sched)
	if out == "" {
		t.Fatalf("expected non-empty output")
	}

	wantSubstrings := []string{"fun abs", "if ", "goto", "__eqI64", "__subWI64"}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("expected FormatFn output to contain %q, got:\n%s", want, out)
		}
	}
}
