package cps

import (
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/lexer"
	"github.com/brmh/fnlc/internal/types"
)

// Expr is a pure CPS value: a Param, a constant, or a primop
// application. Unlike F-AST's Expr, every CPS Expr carries its own
// Name — CPS conversion names every intermediate value — and
// Operands reports the Exprs it depends on, the edges
// internal/doms and internal/schedule walk to place each Expr in a
// Block.
type Expr interface {
	exprNode()
	Span() lexer.Span
	Name() ident.Name
	Type() types.Type
	Operands() []Expr
}

type exprBase struct {
	span lexer.Span
	name ident.Name
	typ  types.Type
}

func (e exprBase) Span() lexer.Span { return e.span }
func (e exprBase) Name() ident.Name { return e.name }
func (e exprBase) Type() types.Type { return e.typ }

// Param is a Block's formal parameter, or an Fn's implicit closure
// parameter once closure conversion exists (not yet: see
// SPEC_FULL.md's Non-goals). Param has no operands: it's the leaf a
// Block introduces into scope for its own body.
type Param struct {
	exprBase
}

func (*Param) exprNode()         {}
func (*Param) Operands() []Expr  { return nil }

// Bool and I64 are constants, also leaves.
type Bool struct {
	exprBase
	Value bool
}

func (*Bool) exprNode()        {}
func (*Bool) Operands() []Expr { return nil }

type I64 struct {
	exprBase
	Value int64
}

func (*I64) exprNode()        {}
func (*I64) Operands() []Expr { return nil }

// Op names one of the four binary primops a PrimApp applies.
type Op int

const (
	AddWI64 Op = iota
	SubWI64
	MulWI64
	EqI64
)

func (op Op) String() string {
	switch op {
	case AddWI64:
		return "addWI64"
	case SubWI64:
		return "subWI64"
	case MulWI64:
		return "mulWI64"
	case EqI64:
		return "eqI64"
	default:
		return "unknown"
	}
}

// PrimApp applies Op to two operands, both evaluated eagerly — there
// is no laziness in this IR's operand order.
type PrimApp struct {
	exprBase
	Op   Op
	Args [2]Expr
}

func (*PrimApp) exprNode()        {}
func (p *PrimApp) Operands() []Expr { return p.Args[:] }

// Cont is a continuation: either a Block (params plus a Transfer) or
// Return, the implicit continuation every Fn ends in.
type Cont interface {
	contNode()
	Name() ident.Name
	AsBlock() (*Block, bool)
}

// Return is the continuation a Fn's body eventually Gotos or Calls
// into to produce the Fn's result.
type Return struct {
	name ident.Name
}

func (*Return) contNode()                   {}
func (r *Return) Name() ident.Name          { return r.name }
func (*Return) AsBlock() (*Block, bool)     { return nil, false }

// Block is a basic block: a list of Params bound on entry and a
// single Transfer that ends it. A Block's Exprs are not stored on the
// Block itself — they are placed here only by internal/schedule,
// since in sea-of-nodes form an Expr belongs to whichever block
// dominates all its uses, not to the block it was created "in".
type Block struct {
	name     ident.Name
	Params   []*Param
	Transfer Transfer
}

func (*Block) contNode()                { }
func (b *Block) Name() ident.Name       { return b.name }
func (b *Block) AsBlock() (*Block, bool) { return b, true }

// Transfer ends a Block, naming the Conts control may pass to next.
type Transfer interface {
	transferNode()
	Span() lexer.Span
	Operands() []Expr
	Successors() []Cont
}

type transferBase struct {
	span lexer.Span
}

func (t transferBase) Span() lexer.Span { return t.span }

// If branches on Cond's value (which must have types.Bool) to Conseq
// or Alt, both zero-argument Blocks.
type If struct {
	transferBase
	Cond   Expr
	Conseq *Block
	Alt    *Block
}

func (*If) transferNode()       {}
func (i *If) Operands() []Expr  { return []Expr{i.Cond} }
func (i *If) Successors() []Cont { return []Cont{i.Conseq, i.Alt} }

// Call applies Exprs[0] to Exprs[1:], passing the result to Cont.
type Call struct {
	transferBase
	Exprs []Expr
	Cont  Cont
}

func (*Call) transferNode() {}

// Callee is the function value being applied.
func (c *Call) Callee() Expr { return c.Exprs[0] }

// Args are the arguments to the call, in order.
func (c *Call) Args() []Expr { return c.Exprs[1:] }

func (c *Call) Operands() []Expr   { return c.Exprs }
func (c *Call) Successors() []Cont { return []Cont{c.Cont} }

// Goto passes Res to Dest directly, with no intervening call.
type Goto struct {
	transferBase
	Dest Cont
	Res  Expr
}

func (*Goto) transferNode()       {}
func (g *Goto) Operands() []Expr  { return []Expr{g.Res} }
func (g *Goto) Successors() []Cont { return []Cont{g.Dest} }

// Fn is a top-level function: a Return continuation for its result
// and an entry Block. Fn is itself an Expr (it is a first-class
// value with a Name and a types.Fn type) but has no operands — it
// does not depend on any other Expr.
type Fn struct {
	exprBase
	Ret   *Return
	Entry *Block
}

func (*Fn) exprNode()        {}
func (*Fn) Operands() []Expr { return nil }

// PostVisitBlocks visits every Block reachable from fn's entry in
// postorder (successors before the block itself), visiting each block
// exactly once. This is the traversal internal/doms's postorder
// numbering and internal/schedule's printer both build on.
func (fn *Fn) PostVisitBlocks(f func(*Block)) {
	visited := make(map[*Block]bool)
	postVisitBlock(fn.Entry, visited, f)
}

func postVisitBlock(b *Block, visited map[*Block]bool, f func(*Block)) {
	if visited[b] {
		return
	}
	visited[b] = true
	for _, succ := range b.Transfer.Successors() {
		if sb, ok := succ.AsBlock(); ok {
			postVisitBlock(sb, visited, f)
		}
	}
	f(b)
}

// PostVisitExprs visits e and every Expr it transitively depends on,
// in postorder, each exactly once. visited is shared across calls so
// a caller can walk several Exprs (e.g. a Transfer's operands) without
// revisiting shared subexpressions.
func PostVisitExprs(e Expr, visited map[Expr]bool, f func(Expr)) {
	if visited[e] {
		return
	}
	visited[e] = true
	for _, operand := range e.Operands() {
		PostVisitExprs(operand, visited, f)
	}
	f(e)
}

// Program is a whole lowered compilation unit: every Fn reachable
// from an external entry point.
type Program struct {
	Externs []*Fn
}

// Builder mints CPS nodes during internal/tocps's F-AST-to-CPS
// conversion. It tracks the map from Name to the Expr that Name
// refers to (so later references to an already-bound Name resolve to
// the node that defines it) and the current Block being filled in.
type Builder struct {
	names   *ident.Interner
	types   *types.Registry
	exprs   map[ident.Name]Expr
	externs []*Fn
	current *Block
}

// NewBuilder returns an empty Builder using names to mint fresh Names
// and reg to resolve ground types.
func NewBuilder(names *ident.Interner, reg *types.Registry) *Builder {
	return &Builder{names: names, types: reg, exprs: make(map[ident.Name]Expr)}
}

// Names returns the Interner the Builder mints fresh Names from.
func (b *Builder) Names() *ident.Interner { return b.names }

// Types returns the Registry the Builder resolves ground types from.
func (b *Builder) Types() *types.Registry { return b.types }

// CurrentBlock returns the Block internal/tocps is currently filling.
func (b *Builder) CurrentBlock() *Block { return b.current }

// SetCurrentBlock switches the Block internal/tocps fills next.
func (b *Builder) SetCurrentBlock(block *Block) { b.current = block }

// Define records that name refers to expr, so a later ID(name) call
// resolves to it.
func (b *Builder) Define(name ident.Name, expr Expr) { b.exprs[name] = expr }

// Fn mints a top-level function. If external, it is recorded as one
// of the Program's entry points.
func (b *Builder) Fn(span lexer.Span, name ident.Name, typ *types.Fn, external bool, ret *Return, entry *Block) *Fn {
	fn := &Fn{exprBase: exprBase{span, name, typ}, Ret: ret, Entry: entry}
	b.Define(name, fn)
	if external {
		b.externs = append(b.externs, fn)
	}
	return fn
}

// GetFn looks up a Fn previously minted with Fn, panicking if name
// does not name one — a programming error in internal/tocps, not a
// user-facing failure mode.
func (b *Builder) GetFn(name ident.Name) *Fn {
	return b.exprs[name].(*Fn)
}

// Block mints a fresh Block with arity formal parameters (filled in
// later via Param) ending in transfer.
func (b *Builder) Block(arity int, transfer Transfer) *Block {
	return &Block{name: b.names.Fresh(), Params: make([]*Param, arity), Transfer: transfer}
}

// Return mints a Return continuation named name.
func (b *Builder) Return(name ident.Name) *Return {
	return &Return{name: name}
}

// Param fills in block's index'th formal parameter and binds name to
// it for subsequent ID lookups.
func (b *Builder) Param(span lexer.Span, typ types.Type, block *Block, name ident.Name, index int) *Param {
	p := &Param{exprBase: exprBase{span, name, typ}}
	block.Params[index] = p
	b.Define(name, p)
	return p
}

// If mints an If transfer.
func (b *Builder) If(span lexer.Span, cond Expr, conseq, alt *Block) Transfer {
	return &If{transferBase: transferBase{span}, Cond: cond, Conseq: conseq, Alt: alt}
}

// MakeCall mints a Call transfer. exprs[0] is the callee, exprs[1:]
// are the arguments.
func (b *Builder) MakeCall(span lexer.Span, exprs []Expr, cont Cont) Transfer {
	return &Call{transferBase: transferBase{span}, Exprs: exprs, Cont: cont}
}

// Goto mints a Goto transfer.
func (b *Builder) Goto(span lexer.Span, dest Cont, res Expr) Transfer {
	return &Goto{transferBase: transferBase{span}, Dest: dest, Res: res}
}

// AddWI64, SubWI64, MulWI64, and EqI64 mint the corresponding PrimApp,
// naming its result name. A PrimApp with the same Op over the very
// same operand nodes as an existing one is not minted again: the
// existing node is returned, so repeated pure expressions share one
// node.
func (b *Builder) AddWI64(span lexer.Span, name ident.Name, typ types.Type, args [2]Expr) Expr {
	return b.primApp(span, name, typ, AddWI64, args)
}

func (b *Builder) SubWI64(span lexer.Span, name ident.Name, typ types.Type, args [2]Expr) Expr {
	return b.primApp(span, name, typ, SubWI64, args)
}

func (b *Builder) MulWI64(span lexer.Span, name ident.Name, typ types.Type, args [2]Expr) Expr {
	return b.primApp(span, name, typ, MulWI64, args)
}

func (b *Builder) EqI64Op(span lexer.Span, name ident.Name, typ types.Type, args [2]Expr) Expr {
	return b.primApp(span, name, typ, EqI64, args)
}

func (b *Builder) primApp(span lexer.Span, name ident.Name, typ types.Type, op Op, args [2]Expr) Expr {
	for _, e := range b.exprs {
		if existing, ok := e.(*PrimApp); ok && existing.Op == op && existing.Args == args {
			b.Define(name, existing)
			return existing
		}
	}
	app := &PrimApp{exprBase: exprBase{span, name, typ}, Op: op, Args: args}
	b.Define(name, app)
	return app
}

// ID resolves a previously Defined Name back to its Expr.
func (b *Builder) ID(name ident.Name) Expr { return b.exprs[name] }

// ConstBool mints a Bool constant.
func (b *Builder) ConstBool(span lexer.Span, name ident.Name, typ types.Type, value bool) *Bool {
	n := &Bool{exprBase: exprBase{span, name, typ}, Value: value}
	b.Define(name, n)
	return n
}

// ConstI64 mints an I64 constant.
func (b *Builder) ConstI64(span lexer.Span, name ident.Name, typ types.Type, value int64) *I64 {
	n := &I64{exprBase: exprBase{span, name, typ}, Value: value}
	b.Define(name, n)
	return n
}

// Build finishes the Program, fixing the set of external entry
// points that were minted with Fn(..., external: true, ...).
func (b *Builder) Build() *Program {
	return &Program{Externs: b.externs}
}
