package checker

import (
	"github.com/brmh/fnlc/internal/errors"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/types"
)

// DeclarePass installs every top-level FunDef's type — built straight
// from its annotation, with no inference — into the root Env, so
// forward and mutually recursive calls resolve during CheckPass
// regardless of declaration order.
type DeclarePass struct{}

func (*DeclarePass) Name() string { return "declare" }

func (p *DeclarePass) Run(ctx *Context) *errors.CompilerError {
	for _, def := range ctx.Prog.Defs {
		domain := make([]types.Type, len(def.Params))
		for i, param := range def.Params {
			domain[i] = typeOf(ctx.Types, param.Type)
		}
		codomain := typeOf(ctx.Types, def.Codomain)
		fnTy := ctx.Types.Fn(domain, codomain)

		ctx.Env.Declare(ctx.Names, def.Name, fnTy)
		ctx.fnTypes[def] = fnTy
	}
	return nil
}

func typeOf(reg *types.Registry, t srcast.TypeExpr) types.Type {
	if t == srcast.BoolType {
		return reg.Bool()
	}
	return reg.I64()
}
