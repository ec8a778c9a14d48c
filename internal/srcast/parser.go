package srcast

import (
	"fmt"

	"github.com/brmh/fnlc/internal/errors"
	"github.com/brmh/fnlc/internal/lexer"
)

// Parser is a small recursive-descent parser over internal/lexer
// tokens. It does not resynchronize after an error: every unexpected
// token is recorded in Errors and ParseProgram keeps consuming tokens
// until EOF.
type Parser struct {
	l      *lexer.Lexer
	file   string
	source string

	cur  lexer.Token
	peek lexer.Token

	errs []*errors.CompilerError
}

// New returns a Parser over source, attributing spans to file.
func New(file, source string) *Parser {
	p := &Parser{l: lexer.New(file, source), file: file, source: source}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every ParseError (and any LexError surfaced by the
// underlying lexer) collected while parsing.
func (p *Parser) Errors() []*errors.CompilerError { return p.errs }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
	if p.peek.Type == lexer.ILLEGAL {
		if le := p.l.Err(); le != nil {
			p.errs = append(p.errs, errors.New(errors.Lex, spanOf(le.Pos, p.file), "unrecognized character", p.source))
		}
	}
}

func spanOf(pos lexer.Position, file string) lexer.Span {
	return lexer.Span{File: file, Start: pos, End: pos}
}

func (p *Parser) addError(span lexer.Span, format string, args ...any) {
	p.errs = append(p.errs, errors.New(errors.Parse, span, fmt.Sprintf(format, args...), p.source))
}

func (p *Parser) expect(tt lexer.TokenType, what string) lexer.Token {
	tok := p.cur
	if p.cur.Type != tt {
		p.addError(p.cur.Span, "expected %s, got %q", what, p.cur.Literal)
	} else {
		p.nextToken()
	}
	return tok
}

// ParseProgram parses a whole compilation unit. Errors accumulated
// along the way are available from Errors(); a non-nil *Program is
// still returned so callers can keep printing diagnostics against a
// best-effort tree, but internal/driver never checks a Program that
// had any ParseError.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for p.cur.Type != lexer.EOF {
		if p.cur.Type != lexer.FUN {
			p.addError(p.cur.Span, "expected 'fun', got %q", p.cur.Literal)
			p.nextToken()
			continue
		}
		prog.Defs = append(prog.Defs, p.parseFunDef())
	}
	return prog
}

func (p *Parser) parseFunDef() *FunDef {
	start := p.cur.Span
	p.nextToken() // 'fun'

	name := p.expect(lexer.IDENT, "function name").Literal

	p.expect(lexer.LPAREN, "'('")
	var params []Param
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		pspan := p.cur.Span
		pname := p.expect(lexer.IDENT, "parameter name").Literal
		p.expect(lexer.COLON, "':'")
		ptype := p.parseTypeExpr()
		params = append(params, Param{Span: pspan, Name: pname, Type: ptype})
		if p.cur.Type == lexer.COMMA {
			p.nextToken()
		}
	}
	p.expect(lexer.RPAREN, "')'")
	p.expect(lexer.COLON, "':'")
	codomain := p.parseTypeExpr()
	body := p.parseBlock()

	return &FunDef{Span: start, Name: name, Params: params, Codomain: codomain, Body: body}
}

func (p *Parser) parseTypeExpr() TypeExpr {
	switch p.cur.Type {
	case lexer.BOOL:
		p.nextToken()
		return BoolType
	case lexer.I64:
		p.nextToken()
		return I64Type
	default:
		p.addError(p.cur.Span, "expected a type ('bool' or 'i64'), got %q", p.cur.Literal)
		p.nextToken()
		return I64Type
	}
}

// parseBlock parses "{ (val ... ;)* Expr }".
func (p *Parser) parseBlock() *Block {
	start := p.cur.Span
	p.expect(lexer.LBRACE, "'{'")

	var stmts []*Val
	for p.cur.Type == lexer.VAL {
		stmts = append(stmts, p.parseVal())
	}

	body := p.parseExpr()
	end := p.cur.Span
	p.expect(lexer.RBRACE, "'}'")

	return &Block{exprBase: exprBase{span: joinSpan(start, end)}, Stmts: stmts, Body: body}
}

func (p *Parser) parseVal() *Val {
	start := p.cur.Span
	p.nextToken() // 'val'
	pspan := p.cur.Span
	pname := p.expect(lexer.IDENT, "binder name").Literal
	p.expect(lexer.ASSIGN, "'='")
	valExpr := p.parseExpr()
	p.expect(lexer.SEMI, "';'")

	return &Val{Span: start, Pat: &IdPat{Span: pspan, Name: pname}, ValExpr: valExpr}
}

// parseExpr parses a single expression. This grammar has no infix
// operators of its own (arithmetic is the explicit primop call
// syntax), so there is no precedence climbing — every expression is a
// primary form.
func (p *Parser) parseExpr() Expr {
	switch p.cur.Type {
	case lexer.IF:
		return p.parseIf()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.TRUE, lexer.FALSE:
		return p.parseBoolLit()
	case lexer.INT:
		return p.parseIntLit()
	case lexer.ADD_W_I64, lexer.SUB_W_I64, lexer.MUL_W_I64, lexer.EQ_I64:
		return p.parsePrimApp()
	case lexer.IDENT:
		return p.parseIDOrCall()
	case lexer.LPAREN:
		p.nextToken()
		e := p.parseExpr()
		p.expect(lexer.RPAREN, "')'")
		return e
	default:
		span := p.cur.Span
		p.addError(span, "unexpected token %q", p.cur.Literal)
		p.nextToken()
		return &Id{exprBase: exprBase{span: span}, Name: "<error>"}
	}
}

func (p *Parser) parseIf() Expr {
	start := p.cur.Span
	p.nextToken() // 'if'
	cond := p.parseExpr()
	conseq := p.parseBlock()
	p.expect(lexer.ELSE, "'else'")
	alt := p.parseBlock()
	return &If{exprBase: exprBase{span: joinSpan(start, alt.span)}, Cond: cond, Conseq: conseq, Alt: alt}
}

func (p *Parser) parseBoolLit() Expr {
	tok := p.cur
	p.nextToken()
	return &Bool{exprBase: exprBase{span: tok.Span}, Value: tok.Type == lexer.TRUE}
}

func (p *Parser) parseIntLit() Expr {
	tok := p.cur
	p.nextToken()
	return &Int{exprBase: exprBase{span: tok.Span}, Digits: tok.Literal}
}

var primopOf = map[lexer.TokenType]PrimOp{
	lexer.ADD_W_I64: AddWI64,
	lexer.SUB_W_I64: SubWI64,
	lexer.MUL_W_I64: MulWI64,
	lexer.EQ_I64:    EqI64,
}

func (p *Parser) parsePrimApp() Expr {
	start := p.cur.Span
	op := primopOf[p.cur.Type]
	p.nextToken()
	p.expect(lexer.LPAREN, "'('")
	lhs := p.parseExpr()
	p.expect(lexer.COMMA, "','")
	rhs := p.parseExpr()
	end := p.cur.Span
	p.expect(lexer.RPAREN, "')'")
	return &PrimApp{exprBase: exprBase{span: joinSpan(start, end)}, Op: op, Args: [2]Expr{lhs, rhs}}
}

func (p *Parser) parseIDOrCall() Expr {
	tok := p.cur
	p.nextToken()
	id := &Id{exprBase: exprBase{span: tok.Span}, Name: tok.Literal}
	if p.cur.Type != lexer.LPAREN {
		return id
	}

	p.nextToken() // '('
	var args []Expr
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		args = append(args, p.parseExpr())
		if p.cur.Type == lexer.COMMA {
			p.nextToken()
		}
	}
	end := p.cur.Span
	p.expect(lexer.RPAREN, "')'")
	return &Call{exprBase: exprBase{span: joinSpan(tok.Span, end)}, Callee: id, Args: args}
}

func joinSpan(a, b lexer.Span) lexer.Span {
	return lexer.Span{File: a.File, Start: a.Start, End: b.End}
}
