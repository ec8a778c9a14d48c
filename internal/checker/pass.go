package checker

import (
	"github.com/brmh/fnlc/internal/errors"
	"github.com/brmh/fnlc/internal/fast"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/types"
)

// Context is the shared state every Pass reads from and writes to.
// Passes never mutate srcast.Program; they only annotate Context.
type Context struct {
	Prog   *srcast.Program
	Names  *ident.Interner
	Types  *types.Registry
	Source string

	Env *Env

	// fnTypes records each FunDef's declared *types.Fn, keyed by its
	// srcast identity, so CheckPass doesn't re-derive it from
	// scratch (and so it sees exactly the type DeclarePass built from
	// the annotations and forward references resolve to).
	fnTypes map[*srcast.FunDef]*types.Fn

	Result *fast.Program
}

// Pass is one phase of type checking, run in sequence by a
// PassManager. A Pass reports the first error it hits; it does not
// attempt to recover and keep checking past it — the first TypeError
// aborts the pass.
type Pass interface {
	Name() string
	Run(ctx *Context) *errors.CompilerError
}

// PassManager runs a fixed, ordered list of passes, stopping at the
// first one that reports an error.
type PassManager struct {
	passes []Pass
}

// NewPassManager returns a PassManager running passes in order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll runs every pass in order against ctx, stopping and returning
// the first error encountered.
func (pm *PassManager) RunAll(ctx *Context) *errors.CompilerError {
	for _, pass := range pm.passes {
		if err := pass.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Check runs the full two-pass checker over prog and returns the
// resulting fast.Program, or the first TypeError encountered.
func Check(prog *srcast.Program, names *ident.Interner, reg *types.Registry, source string) (*fast.Program, *errors.CompilerError) {
	ctx := &Context{
		Prog:    prog,
		Names:   names,
		Types:   reg,
		Source:  source,
		Env:     NewEnv(),
		fnTypes: make(map[*srcast.FunDef]*types.Fn),
	}

	pm := NewPassManager(&DeclarePass{}, &CheckPass{})
	if err := pm.RunAll(ctx); err != nil {
		return nil, err
	}
	return ctx.Result, nil
}
