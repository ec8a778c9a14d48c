package fast

import (
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/lexer"
	"github.com/brmh/fnlc/internal/types"
)

// Expr is a typed expression node. Every Expr carries the span it was
// parsed from and the types.Type the checker resolved for it.
type Expr interface {
	exprNode()
	Span() lexer.Span
	Type() types.Type
}

type exprBase struct {
	span lexer.Span
	typ  types.Type
}

func (e exprBase) Span() lexer.Span { return e.span }
func (e exprBase) Type() types.Type { return e.typ }

// Id references a binder introduced by a Param or an IdPat.
type Id struct {
	exprBase
	Name ident.Name
}

func (*Id) exprNode() {}

// Bool is a boolean literal.
type Bool struct {
	exprBase
	Value bool
}

func (*Bool) exprNode() {}

// I64 is an integer literal, stored as the parsed value rather than
// the original digit string: internal/checker parses the literal's
// digits with strconv.ParseInt and rejects an out-of-range literal as
// a TypeError, so by the time an I64 node exists its Value is known to
// fit.
type I64 struct {
	exprBase
	Value int64
}

func (*I64) exprNode() {}

// PrimOp names one of the four built-in primitive operations.
type PrimOp int

const (
	AddWI64 PrimOp = iota
	SubWI64
	MulWI64
	EqI64
)

// String renders the primop the way surface syntax and CPS dumps spell
// it: "__addWI64" and so on.
func (op PrimOp) String() string {
	switch op {
	case AddWI64:
		return "__addWI64"
	case SubWI64:
		return "__subWI64"
	case MulWI64:
		return "__mulWI64"
	case EqI64:
		return "__eqI64"
	default:
		return "__unknown"
	}
}

// PrimApp applies one of the four binary primops to two operands.
type PrimApp struct {
	exprBase
	Op   PrimOp
	Args [2]Expr
}

func (*PrimApp) exprNode() {}

// If is a conditional expression: both arms must produce the same
// type, which is also If's own type.
type If struct {
	exprBase
	Cond   Expr
	Conseq Expr
	Alt    Expr
}

func (*If) exprNode() {}

// Call applies Callee, whose type must be a *types.Fn, to Args.
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (*Call) exprNode() {}

// Block is a sequence of Stmts followed by a result Expr, whose type
// is Block's own type. Each Val statement's pattern is in scope for
// the statements and Body that follow it.
type Block struct {
	exprBase
	Stmts []Stmt
	Body  Expr
}

func (*Block) exprNode() {}

// Pat is a typed pattern. This language has only irrefutable
// identifier patterns; Pat is still its own interface (rather than
// folding straight into Val) so the checker and internal/tocps have a
// single place to add pattern kinds later without touching callers
// that only care about binding a Name.
type Pat interface {
	patNode()
	Span() lexer.Span
	Type() types.Type
}

type patBase struct {
	span lexer.Span
	typ  types.Type
}

func (p patBase) Span() lexer.Span { return p.span }
func (p patBase) Type() types.Type { return p.typ }

// IdPat binds Name to the value matched.
type IdPat struct {
	patBase
	Name ident.Name
}

func (*IdPat) patNode() {}

// AsID returns pat itself when it is an IdPat, for callers that need
// to special-case identifier binding (CPS conversion does, since a Val
// whose pattern is an IdPat binds a CPS Param directly rather than
// destructuring).
func AsID(pat Pat) (*IdPat, bool) {
	id, ok := pat.(*IdPat)
	return id, ok
}

// Stmt is a statement within a Block.
type Stmt interface {
	stmtNode()
	Span() lexer.Span
}

type stmtBase struct {
	span lexer.Span
}

func (s stmtBase) Span() lexer.Span { return s.span }

// Val binds the value of ValExpr to Pat for the remainder of the
// enclosing Block.
type Val struct {
	stmtBase
	Pat     Pat
	ValExpr Expr
}

func (*Val) stmtNode() {}

// Param is one parameter of a FunDef, with its own Span distinct from
// the FunDef's for precise diagnostics.
type Param struct {
	Span lexer.Span
	Name ident.Name
	Type types.Type
}

// Def is a top-level definition.
type Def interface {
	defNode()
	Span() lexer.Span
}

type defBase struct {
	span lexer.Span
}

func (d defBase) Span() lexer.Span { return d.span }

// FunDef is a top-level function definition. Domain returns the
// parameter types in order, the shape internal/tocps and
// internal/checker both need when building a types.Fn.
type FunDef struct {
	defBase
	Name     ident.Name
	Params   []Param
	Codomain types.Type
	Body     Expr
}

func (*FunDef) defNode() {}

// Domain returns fd's parameter types, in declaration order.
func (fd *FunDef) Domain() []types.Type {
	domain := make([]types.Type, len(fd.Params))
	for i, p := range fd.Params {
		domain[i] = p.Type
	}
	return domain
}

// Program is a whole checked compilation unit: its top-level
// definitions in declaration order.
type Program struct {
	Defs []Def
}

// NewID, NewBool, NewI64, NewPrimApp, NewIf, NewCall, NewBlock,
// NewIdPat, NewVal, and NewFunDef are the F-AST constructors used by
// internal/checker once a subexpression's type has been resolved.
// Unlike the C++ Program arena allocator, Go needs no arena: these are
// plain composite literals wrapped in functions only so that callers
// set every base field consistently.

func NewID(span lexer.Span, typ types.Type, name ident.Name) *Id {
	return &Id{exprBase: exprBase{span, typ}, Name: name}
}

func NewBool(span lexer.Span, typ types.Type, value bool) *Bool {
	return &Bool{exprBase: exprBase{span, typ}, Value: value}
}

func NewI64(span lexer.Span, typ types.Type, value int64) *I64 {
	return &I64{exprBase: exprBase{span, typ}, Value: value}
}

func NewPrimApp(span lexer.Span, typ types.Type, op PrimOp, args [2]Expr) *PrimApp {
	return &PrimApp{exprBase: exprBase{span, typ}, Op: op, Args: args}
}

func NewIf(span lexer.Span, typ types.Type, cond, conseq, alt Expr) *If {
	return &If{exprBase: exprBase{span, typ}, Cond: cond, Conseq: conseq, Alt: alt}
}

func NewCall(span lexer.Span, typ types.Type, callee Expr, args []Expr) *Call {
	return &Call{exprBase: exprBase{span, typ}, Callee: callee, Args: args}
}

func NewBlock(span lexer.Span, typ types.Type, stmts []Stmt, body Expr) *Block {
	return &Block{exprBase: exprBase{span, typ}, Stmts: stmts, Body: body}
}

func NewIdPat(span lexer.Span, typ types.Type, name ident.Name) *IdPat {
	return &IdPat{patBase: patBase{span, typ}, Name: name}
}

func NewVal(span lexer.Span, pat Pat, valExpr Expr) *Val {
	return &Val{stmtBase: stmtBase{span}, Pat: pat, ValExpr: valExpr}
}

func NewFunDef(span lexer.Span, name ident.Name, params []Param, codomain types.Type, body Expr) *FunDef {
	return &FunDef{defBase: defBase{span}, Name: name, Params: params, Codomain: codomain, Body: body}
}
