package ident

import "testing"

func TestSourcedDedups(t *testing.T) {
	it := New()
	a := it.Sourced("x")
	b := it.Sourced("x")
	if a != b {
		t.Fatalf("Sourced(%q) twice produced distinct Names: %v != %v", "x", a, b)
	}

	c := it.Sourced("y")
	if a == c {
		t.Fatalf("Sourced with different spellings produced equal Names")
	}
}

func TestFreshNeverCollides(t *testing.T) {
	it := New()
	seen := make(map[Name]bool)
	for i := 0; i < 1000; i++ {
		n := it.Fresh()
		if seen[n] {
			t.Fatalf("Fresh produced a repeated Name at iteration %d", i)
		}
		seen[n] = true
	}
}

func TestFreshenChangesIdentity(t *testing.T) {
	it := New()
	n := it.Sourced("acc")
	f := it.Freshen(n)

	if f == n {
		t.Fatalf("Freshen(n) == n, want distinct identity")
	}

	nSpelling, _ := it.Spelling(n)
	fSpelling, _ := it.Spelling(f)
	if nSpelling != fSpelling {
		t.Fatalf("Freshen changed the display hint: %q != %q", nSpelling, fSpelling)
	}
}

func TestSpellingOnlyForSourcedOrHinted(t *testing.T) {
	it := New()
	n := it.Fresh()
	if _, ok := it.Spelling(n); ok {
		t.Fatalf("Fresh() without hint should have no spelling")
	}

	h := it.FreshWith("tmp")
	spelling, ok := it.Spelling(h)
	if !ok || spelling != "tmp" {
		t.Fatalf("FreshWith hint not recorded: got %q, %v", spelling, ok)
	}
}

func TestNameStringRendersHintAndID(t *testing.T) {
	it := New()
	n := it.Sourced("count")
	if got := n.String(); got == "" {
		t.Fatalf("String() returned empty string")
	}
}

func TestTwoInternersKeepSeparateDedupTables(t *testing.T) {
	a := New()
	b := New()

	na := a.Sourced("x")
	nb := b.Sourced("x")

	// Each Interner mints its own counter from zero, so identical
	// spellings on distinct Interners may coincide in id; what must
	// never happen is that the two Interners' dedup tables interact.
	if &a.sourced == &b.sourced {
		t.Fatalf("Interners share dedup state")
	}
	_ = na
	_ = nb
}
