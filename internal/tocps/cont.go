package tocps

import (
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/fast"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/lexer"
)

// cont is the reified "what to do with the next value": a tagged
// interface with two variants, nextCont and trivialCont, in place of a
// virtual continuation hierarchy.
type cont interface {
	isTrivial() bool
	apply(b *cps.Builder, span lexer.Span, v cps.Expr) cps.Expr
	callTo(b *cps.Builder, call *fast.Call, args []cps.Expr) cps.Expr
}

// nextCont is a non-tail continuation: applying it just records an
// optional name binding and hands the value straight back to its
// caller, rather than writing a terminator.
type nextCont struct {
	hint    ident.Name
	hasHint bool
}

func (*nextCont) isTrivial() bool { return false }

func (k *nextCont) apply(b *cps.Builder, _ lexer.Span, v cps.Expr) cps.Expr {
	if k.hasHint {
		b.Define(k.hint, v)
	}
	return v
}

// callTo allocates a one-parameter join block, terminates the current
// block with a Call into it, and continues conversion there.
func (k *nextCont) callTo(b *cps.Builder, call *fast.Call, args []cps.Expr) cps.Expr {
	join := b.Block(1, nil)
	name := k.hint
	if !k.hasHint {
		name = b.Names().Fresh()
	}
	result := b.Param(call.Span(), call.Type(), join, name, 0)

	b.CurrentBlock().Transfer = b.MakeCall(call.Span(), args, join)
	b.SetCurrentBlock(join)
	return result
}

// trivialCont is a continuation that is already a named target
// (Return, or a join Block with one parameter): applying it never
// allocates anything new, it just writes the current block's
// terminator.
type trivialCont struct {
	target cps.Cont
}

func (*trivialCont) isTrivial() bool { return true }

func (k *trivialCont) apply(b *cps.Builder, span lexer.Span, v cps.Expr) cps.Expr {
	b.CurrentBlock().Transfer = b.Goto(span, k.target, v)
	return v
}

func (k *trivialCont) callTo(b *cps.Builder, call *fast.Call, args []cps.Expr) cps.Expr {
	b.CurrentBlock().Transfer = b.MakeCall(call.Span(), args, k.target)
	return nil
}

func hintOrFresh(b *cps.Builder, hint ident.Name, hasHint bool) ident.Name {
	if hasHint {
		return hint
	}
	return b.Names().Fresh()
}
