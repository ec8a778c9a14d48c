package target

import (
	"strings"
	"testing"
)

func TestDisassembleIdentity(t *testing.T) {
	m := lowerSource(t, `fun id(x : i64) : i64 { x }`)

	out := m.String()
	if out == "" {
		t.Fatal("expected non-empty disassembly")
	}
	if !strings.Contains(out, "== id (i64) -> i64 ==") {
		t.Fatalf("expected function header in disassembly, got:\n%s", out)
	}
	if !strings.Contains(out, "ret") {
		t.Fatalf("expected a ret instruction in disassembly, got:\n%s", out)
	}
}
