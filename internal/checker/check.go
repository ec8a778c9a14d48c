package checker

import (
	"fmt"
	"strconv"

	"github.com/brmh/fnlc/internal/errors"
	"github.com/brmh/fnlc/internal/fast"
	"github.com/brmh/fnlc/internal/lexer"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/types"
)

// CheckPass checks every FunDef's body against its DeclarePass-built
// codomain, producing ctx.Result.
type CheckPass struct{}

func (*CheckPass) Name() string { return "check" }

func (p *CheckPass) Run(ctx *Context) *errors.CompilerError {
	result := &fast.Program{}

	for _, def := range ctx.Prog.Defs {
		fnTy := ctx.fnTypes[def]
		env := ctx.Env.Push()

		params := make([]fast.Param, len(def.Params))
		for i, param := range def.Params {
			ty := fnTy.Domain[i]
			name := env.Declare(ctx.Names, param.Name, ty)
			params[i] = fast.Param{Span: param.Span, Name: name, Type: ty}
		}

		body, err := check(ctx, def.Body, env, fnTy.Codomain)
		if err != nil {
			return err
		}

		topName, _, _ := ctx.Env.Find(def.Name)
		result.Defs = append(result.Defs, fast.NewFunDef(def.Span, topName, params, fnTy.Codomain, body))
	}

	ctx.Result = result
	return nil
}

// check synthesizes e's type and unifies it with expected.
func check(ctx *Context, e srcast.Expr, env *Env, expected types.Type) (fast.Expr, *errors.CompilerError) {
	node, ty, err := synth(ctx, e, env)
	if err != nil {
		return nil, err
	}
	if uerr := types.Unify(ty, expected, e.Span()); uerr != nil {
		return nil, newTypeErr(ctx, e.Span(), uerr.Error())
	}
	return node, nil
}

func synth(ctx *Context, e srcast.Expr, env *Env) (fast.Expr, types.Type, *errors.CompilerError) {
	switch n := e.(type) {
	case *srcast.Id:
		name, ty, ok := env.Find(n.Name)
		if !ok {
			return nil, nil, newTypeErr(ctx, n.Span(), fmt.Sprintf("unbound identifier %q", n.Name))
		}
		return fast.NewID(n.Span(), ty, name), ty, nil

	case *srcast.Bool:
		return fast.NewBool(n.Span(), ctx.Types.Bool(), n.Value), ctx.Types.Bool(), nil

	case *srcast.Int:
		v, perr := strconv.ParseInt(n.Digits, 10, 64)
		if perr != nil {
			return nil, nil, newTypeErr(ctx, n.Span(), fmt.Sprintf("integer literal %q out of range", n.Digits))
		}
		return fast.NewI64(n.Span(), ctx.Types.I64(), v), ctx.Types.I64(), nil

	case *srcast.PrimApp:
		return synthPrimApp(ctx, n, env)

	case *srcast.If:
		return synthIf(ctx, n, env)

	case *srcast.Call:
		return synthCall(ctx, n, env)

	case *srcast.Block:
		return synthBlock(ctx, n, env)

	default:
		return nil, nil, newTypeErr(ctx, e.Span(), "internal: unhandled expression form")
	}
}

func synthPrimApp(ctx *Context, n *srcast.PrimApp, env *Env) (fast.Expr, types.Type, *errors.CompilerError) {
	lhs, lerr := check(ctx, n.Args[0], env, ctx.Types.I64())
	if lerr != nil {
		return nil, nil, lerr
	}
	rhs, rerr := check(ctx, n.Args[1], env, ctx.Types.I64())
	if rerr != nil {
		return nil, nil, rerr
	}

	args := [2]fast.Expr{lhs, rhs}
	switch n.Op {
	case srcast.AddWI64:
		return fast.NewPrimApp(n.Span(), ctx.Types.I64(), fast.AddWI64, args), ctx.Types.I64(), nil
	case srcast.SubWI64:
		return fast.NewPrimApp(n.Span(), ctx.Types.I64(), fast.SubWI64, args), ctx.Types.I64(), nil
	case srcast.MulWI64:
		return fast.NewPrimApp(n.Span(), ctx.Types.I64(), fast.MulWI64, args), ctx.Types.I64(), nil
	default: // srcast.EqI64
		return fast.NewPrimApp(n.Span(), ctx.Types.Bool(), fast.EqI64, args), ctx.Types.Bool(), nil
	}
}

func synthIf(ctx *Context, n *srcast.If, env *Env) (fast.Expr, types.Type, *errors.CompilerError) {
	cond, cerr := check(ctx, n.Cond, env, ctx.Types.Bool())
	if cerr != nil {
		return nil, nil, cerr
	}

	conseq, ty, terr := synth(ctx, n.Conseq, env)
	if terr != nil {
		return nil, nil, terr
	}

	alt, aerr := check(ctx, n.Alt, env, ty)
	if aerr != nil {
		return nil, nil, aerr
	}

	return fast.NewIf(n.Span(), ty, cond, conseq, alt), ty, nil
}

func synthCall(ctx *Context, n *srcast.Call, env *Env) (fast.Expr, types.Type, *errors.CompilerError) {
	callee, calleeTy, cerr := synth(ctx, n.Callee, env)
	if cerr != nil {
		return nil, nil, cerr
	}

	fnTy, ok := types.Find(calleeTy).(*types.Fn)
	if !ok {
		return nil, nil, newTypeErr(ctx, n.Callee.Span(), fmt.Sprintf("called value of type %s is not a function", calleeTy))
	}
	if len(fnTy.Domain) != len(n.Args) {
		return nil, nil, newTypeErr(ctx, n.Span(), fmt.Sprintf("expected %d argument(s), got %d", len(fnTy.Domain), len(n.Args)))
	}

	args := make([]fast.Expr, len(n.Args))
	for i, a := range n.Args {
		arg, aerr := check(ctx, a, env, fnTy.Domain[i])
		if aerr != nil {
			return nil, nil, aerr
		}
		args[i] = arg
	}

	return fast.NewCall(n.Span(), fnTy.Codomain, callee, args), fnTy.Codomain, nil
}

func synthBlock(ctx *Context, n *srcast.Block, env *Env) (fast.Expr, types.Type, *errors.CompilerError) {
	inner := env.Push()

	stmts := make([]fast.Stmt, len(n.Stmts))
	for i, stmt := range n.Stmts {
		valExpr, ty, err := synth(ctx, stmt.ValExpr, inner)
		if err != nil {
			return nil, nil, err
		}
		name := inner.Declare(ctx.Names, stmt.Pat.Name, ty)
		pat := fast.NewIdPat(stmt.Pat.Span, ty, name)
		stmts[i] = fast.NewVal(stmt.Span, pat, valExpr)
	}

	body, bodyTy, err := synth(ctx, n.Body, inner)
	if err != nil {
		return nil, nil, err
	}

	return fast.NewBlock(n.Span(), bodyTy, stmts, body), bodyTy, nil
}

func newTypeErr(ctx *Context, span lexer.Span, msg string) *errors.CompilerError {
	return errors.New(errors.Type, span, msg, ctx.Source)
}
