package checker

import (
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/types"
)

type binding struct {
	name ident.Name
	typ  types.Type
}

// Env is a lexical stack of frames mapping a source spelling to the
// freshened Name and Type it was last declared at. Declaring the same
// spelling twice in nested frames shadows rather than errors: the
// inner Declare call only ever touches its own frame.
type Env struct {
	parent *Env
	vars   map[string]binding
}

// NewEnv returns an empty root frame.
func NewEnv() *Env {
	return &Env{vars: make(map[string]binding)}
}

// Push returns a fresh child frame of e.
func (e *Env) Push() *Env {
	return &Env{parent: e, vars: make(map[string]binding)}
}

// Declare freshens src's spelling into a new Name via names, binds it
// to typ in e's own frame, and returns the new Name. Declare always
// freshens — even a first-time binder — so that every later pass
// (CPS conversion in particular) can treat Name identity as sound
// under shadowing.
func (e *Env) Declare(names *ident.Interner, src string, typ types.Type) ident.Name {
	n := names.FreshWith(src)
	e.vars[src] = binding{name: n, typ: typ}
	return n
}

// Find resolves src against e and its ancestors, nearest frame first.
func (e *Env) Find(src string) (ident.Name, types.Type, bool) {
	for f := e; f != nil; f = f.parent {
		if b, ok := f.vars[src]; ok {
			return b.name, b.typ, true
		}
	}
	return ident.Name{}, nil, false
}
