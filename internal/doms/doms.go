package doms

import "github.com/brmh/fnlc/internal/cps"

// Tree is a dominator tree over one cps.Fn's reachable blocks. Entry
// is its own immediate dominator (a self-parent), rather than having
// no parent at all, so Idom and LCA never need a nil-root special
// case.
type Tree struct {
	entry  *cps.Block
	idom   map[*cps.Block]*cps.Block
	order  map[*cps.Block]int
	blocks []*cps.Block // postorder-indexed: blocks[order[b]] == b
}

// Build computes fn's dominator tree.
func Build(fn *cps.Fn) *Tree {
	var postOrder []*cps.Block
	fn.PostVisitBlocks(func(b *cps.Block) { postOrder = append(postOrder, b) })

	index := make(map[*cps.Block]int, len(postOrder))
	for i, b := range postOrder {
		index[b] = i
	}
	entryIdx := index[fn.Entry]

	preds := make([][]int, len(postOrder))
	for i, b := range postOrder {
		for _, succ := range b.Transfer.Successors() {
			if sb, ok := succ.AsBlock(); ok {
				j := index[sb]
				preds[j] = append(preds[j], i)
			}
		}
	}

	doms := make([]int, len(postOrder))
	for i := range doms {
		doms[i] = -1
	}
	doms[entryIdx] = entryIdx

	for changed := true; changed; {
		changed = false
		for i := entryIdx - 1; i >= 0; i-- {
			newIdom := -1
			for _, p := range preds[i] {
				if doms[p] == -1 {
					continue
				}
				if newIdom == -1 {
					newIdom = p
					continue
				}
				newIdom = intersect(doms, p, newIdom)
			}
			if newIdom != -1 && doms[i] != newIdom {
				doms[i] = newIdom
				changed = true
			}
		}
	}

	idom := make(map[*cps.Block]*cps.Block, len(postOrder))
	for i, b := range postOrder {
		idom[b] = postOrder[doms[i]]
	}

	return &Tree{entry: fn.Entry, idom: idom, order: index, blocks: postOrder}
}

// intersect walks two postorder indices up their idom chains until
// they meet, per Cooper-Harvey-Kennedy: the finger with the smaller
// postorder index always lags the immediate dominator it's chasing,
// since every block's idom has a strictly larger postorder index than
// the block itself (entry, the universal dominator, is visited last
// and so carries the largest index of all).
func intersect(doms []int, a, b int) int {
	for a != b {
		for a < b {
			a = doms[a]
		}
		for b < a {
			b = doms[b]
		}
	}
	return a
}

// Idom returns b's immediate dominator, and false if b is not part of
// this tree (unreachable from entry).
func (t *Tree) Idom(b *cps.Block) (*cps.Block, bool) {
	d, ok := t.idom[b]
	return d, ok
}

// Dominates reports whether a dominates b (a == b counts).
func (t *Tree) Dominates(a, b *cps.Block) bool {
	for {
		if a == b {
			return true
		}
		if b == t.entry {
			return a == t.entry
		}
		b = t.idom[b]
	}
}

// LCA returns the lowest block that dominates both a and b — the
// block schedule-late places an expression in when a and b are two of
// its uses.
func (t *Tree) LCA(a, b *cps.Block) *cps.Block {
	ai, bi := t.order[a], t.order[b]
	for ai != bi {
		for ai < bi {
			ai = t.order[t.idom[t.blocks[ai]]]
		}
		for bi < ai {
			bi = t.order[t.idom[t.blocks[bi]]]
		}
	}
	return t.blocks[ai]
}

// Preorder returns every block reachable from entry in dominator-tree
// preorder: every block appears after its own immediate dominator,
// which is the order internal/target declares blocks in so that a
// block's dominator (and therefore any value it defines) is always
// declared before a user that's dominated by it.
func (t *Tree) Preorder() []*cps.Block {
	children := make(map[*cps.Block][]*cps.Block, len(t.idom))
	for _, b := range t.blocks {
		if b == t.entry {
			continue
		}
		children[t.idom[b]] = append(children[t.idom[b]], b)
	}

	var out []*cps.Block
	var visit func(*cps.Block)
	visit = func(b *cps.Block) {
		out = append(out, b)
		for _, c := range children[b] {
			visit(c)
		}
	}
	visit(t.entry)
	return out
}
