package cps

import (
	"testing"

	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/lexer"
	"github.com/brmh/fnlc/internal/types"
)

func TestBuilderWiresParamsAndPrimApp(t *testing.T) {
	names := ident.New()
	reg := types.NewRegistry(names)
	b := NewBuilder(names, reg)

	ret := b.Return(names.Fresh())
	entry := b.Block(1, nil)
	xName := names.Sourced("x")
	x := b.Param(lexer.Span{}, reg.I64(), entry, xName, 0)

	sumName := names.Fresh()
	sum := b.AddWI64(lexer.Span{}, sumName, reg.I64(), [2]Expr{x, x})
	entry.Transfer = b.Goto(lexer.Span{}, ret, sum)

	if entry.Params[0] != x {
		t.Fatalf("expected entry's param 0 to be x")
	}
	if b.ID(sumName) != sum {
		t.Fatalf("expected ID(sumName) to resolve to the defined PrimApp")
	}
	if g, ok := entry.Transfer.(*Goto); !ok || g.Res != sum {
		t.Fatalf("expected entry to end in a Goto carrying sum")
	}
}

func TestPostVisitBlocksVisitsEachOnce(t *testing.T) {
	names := ident.New()
	reg := types.NewRegistry(names)
	b := NewBuilder(names, reg)

	ret := b.Return(names.Fresh())
	joinBlock := b.Block(0, b.Goto(lexer.Span{}, ret, b.ConstI64(lexer.Span{}, names.Fresh(), reg.I64(), 0)))
	conseq := b.Block(0, b.Goto(lexer.Span{}, joinBlock, b.ConstI64(lexer.Span{}, names.Fresh(), reg.I64(), 1)))
	alt := b.Block(0, b.Goto(lexer.Span{}, joinBlock, b.ConstI64(lexer.Span{}, names.Fresh(), reg.I64(), 2)))
	cond := b.ConstBool(lexer.Span{}, names.Fresh(), reg.Bool(), true)
	entry := b.Block(0, b.If(lexer.Span{}, cond, conseq, alt))

	fn := b.Fn(lexer.Span{}, names.Sourced("f"), reg.Fn(nil, reg.I64()), true, ret, entry)

	var visited []*Block
	fn.Entry.Transfer = entry.Transfer // no-op, keeps entry wired
	fn.PostVisitBlocks(func(blk *Block) { visited = append(visited, blk) })

	if len(visited) != 4 {
		t.Fatalf("expected 4 distinct blocks visited (diamond with shared join), got %d", len(visited))
	}
	if visited[len(visited)-1] != entry {
		t.Fatalf("expected entry block visited last in postorder")
	}
}

func TestDescribePrimApp(t *testing.T) {
	names := ident.New()
	reg := types.NewRegistry(names)
	b := NewBuilder(names, reg)

	xName := names.Sourced("x")
	x := b.ConstI64(lexer.Span{}, xName, reg.I64(), 1)
	sum := b.AddWI64(lexer.Span{}, names.Fresh(), reg.I64(), [2]Expr{x, x})

	got := Describe(sum)
	want := "__addWI64(" + x.Name().String() + ", " + x.Name().String() + ")"
	if got != want {
		t.Fatalf("Describe mismatch:\n got  %q\n want %q", got, want)
	}
}
