package ident

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/text/width"
)

// Name is an opaque, totally-ordered identifier. The zero Name is
// invalid; every live Name is produced by an Interner.
//
// Equality is by id alone: two Names with the same hint but different
// id are distinct, which is exactly what Freshen relies on to make
// shadowing sound.
type Name struct {
	id   uint64
	hint string
}

// Less gives Name a total order, so Names may key sorted containers
// (dominator-tree preorder walks want deterministic tie-breaking).
func (n Name) Less(other Name) bool { return n.id < other.id }

// Hint returns the display spelling associated with n, if any.
func (n Name) Hint() string { return n.hint }

// String renders n as "hint$id", or "$id" if n has no hint.
func (n Name) String() string {
	if n.hint == "" {
		return fmt.Sprintf("$%d", n.id)
	}
	return fmt.Sprintf("%s$%d", n.hint, n.id)
}

// Interner mints and deduplicates Names for a single compilation.
// It owns a monotonic counter and a table of source spellings; neither
// is shared across Interner values. Each Interner counts from zero, so
// two Interners can produce equal Names from identical input; Names
// are only meaningful within the Interner that minted them.
type Interner struct {
	counter  uint64
	sourced  map[string]Name
	spelling map[uint64]string
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{
		sourced:  make(map[string]Name),
		spelling: make(map[uint64]string),
	}
}

// Sourced interns a source-level spelling. Calling Sourced twice with
// the same spelling on the same Interner returns the same Name.
func (it *Interner) Sourced(spelling string) Name {
	if n, ok := it.sourced[spelling]; ok {
		return n
	}
	n := it.mint(spelling)
	it.sourced[spelling] = n
	return n
}

// Fresh mints a Name that is unequal to every Name ever produced by
// it, past or future, and carries no display hint.
func (it *Interner) Fresh() Name {
	return it.mint("")
}

// FreshWith mints a fresh Name carrying hint for diagnostics only;
// the hint does not participate in equality or lookup.
func (it *Interner) FreshWith(hint string) Name {
	return it.mint(normalizeHint(hint))
}

// Freshen mints a Name that displays like n but has a new identity.
// Freshen(n) != n always holds, even though Spelling(Freshen(n)) may
// equal Spelling(n).
func (it *Interner) Freshen(n Name) Name {
	return it.FreshWith(n.hint)
}

// Spelling returns the display spelling recorded for n, if any.
func (it *Interner) Spelling(n Name) (string, bool) {
	s, ok := it.spelling[n.id]
	return s, ok
}

func (it *Interner) mint(hint string) Name {
	id := atomic.AddUint64(&it.counter, 1)
	n := Name{id: id, hint: hint}
	if hint != "" {
		it.spelling[id] = hint
	}
	return n
}

// normalizeHint folds source spellings to their narrow width form so
// that diagnostics involving full-width or combining variants of an
// identifier render consistently regardless of which form the source
// file used — the same Unicode-safety discipline the surface lexer
// applies to column counting.
func normalizeHint(hint string) string {
	return width.Fold.String(hint)
}
