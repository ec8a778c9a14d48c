package doms

import "testing"

func TestBuildDiamond(t *testing.T) {
	fn := compile(t, `
		fun abs(x: i64): i64 {
			if __eqI64(x, 0) {
				0
			} else {
				__subWI64(0, x)
			}
		}
	`, "abs")

	tree := Build(fn)

	entry := fn.Entry
	succs := entry.Transfer.Successors()
	if len(succs) != 2 {
		t.Fatalf("expected entry to end in a 2-way branch, got %d successors", len(succs))
	}
	conseq, ok := succs[0].AsBlock()
	if !ok {
		t.Fatalf("expected first successor to be a Block")
	}
	alt, ok := succs[1].AsBlock()
	if !ok {
		t.Fatalf("expected second successor to be a Block")
	}

	if !tree.Dominates(entry, conseq) {
		t.Errorf("expected entry to dominate the conseq block")
	}
	if !tree.Dominates(entry, alt) {
		t.Errorf("expected entry to dominate the alt block")
	}
	if tree.Dominates(conseq, alt) || tree.Dominates(alt, conseq) {
		t.Errorf("expected conseq and alt to dominate neither each other")
	}

	idom, ok := tree.Idom(conseq)
	if !ok || idom != entry {
		t.Errorf("expected conseq's immediate dominator to be entry, got %v (ok=%v)", idom, ok)
	}

	if lca := tree.LCA(conseq, alt); lca != entry {
		t.Errorf("expected LCA(conseq, alt) == entry, got %v", lca)
	}
	if lca := tree.LCA(entry, conseq); lca != entry {
		t.Errorf("expected LCA(entry, conseq) == entry, got %v", lca)
	}

	order := tree.Preorder()
	if len(order) != 3 || order[0] != entry {
		t.Fatalf("expected preorder to start with entry and list 3 blocks, got %v", order)
	}
}

func TestBuildSingleBlock(t *testing.T) {
	fn := compile(t, `
		fun id(x: i64): i64 {
			x
		}
	`, "id")

	tree := Build(fn)
	idom, ok := tree.Idom(fn.Entry)
	if !ok || idom != fn.Entry {
		t.Errorf("expected a single-block Fn's entry to be its own immediate dominator")
	}
	if order := tree.Preorder(); len(order) != 1 || order[0] != fn.Entry {
		t.Errorf("expected preorder of a single-block Fn to be just [entry], got %v", order)
	}
}
