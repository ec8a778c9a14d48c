package schedule

import (
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/doms"
)

// Schedule maps every Expr reachable from a Fn's body to the Block it
// was placed in.
type Schedule struct {
	blockOf map[cps.Expr]*cps.Block
}

// BlockOf returns the Block e was scheduled into, and false if e was
// never reached by Late (e.g. it belongs to a different Fn).
func (s *Schedule) BlockOf(e cps.Expr) (*cps.Block, bool) {
	b, ok := s.blockOf[e]
	return b, ok
}

// Late computes the schedule-late placement for every Expr in fn's
// body, given fn's dominator tree.
//
// Params are pre-seeded to their owning Block rather than derived from
// their uses: a Param is a Block's entry-time phi, not a floatable
// pure value, so it has nowhere else it could be placed.
//
// Every other Expr is visited in reverse postorder of the sea-of-nodes
// graph (so by the time an Expr is placed, every Expr that uses it has
// already been placed) and assigned the dominator-tree least common
// ancestor of every Block that uses it — directly, as a Transfer's
// operand, or indirectly, as another Expr's operand.
func Late(fn *cps.Fn, tree *doms.Tree) *Schedule {
	blockOf := make(map[cps.Expr]*cps.Block)

	var exprOrder []cps.Expr
	visited := make(map[cps.Expr]bool)
	useExprs := make(map[cps.Expr][]cps.Expr)
	useTransfers := make(map[cps.Expr][]cps.Transfer)
	transferBlock := make(map[cps.Transfer]*cps.Block)

	fn.PostVisitBlocks(func(b *cps.Block) {
		transferBlock[b.Transfer] = b
		for _, p := range b.Params {
			blockOf[p] = b
		}

		for _, operand := range b.Transfer.Operands() {
			useTransfers[operand] = append(useTransfers[operand], b.Transfer)
			cps.PostVisitExprs(operand, visited, func(e cps.Expr) {
				exprOrder = append(exprOrder, e)
				for _, sub := range e.Operands() {
					useExprs[sub] = append(useExprs[sub], e)
				}
			})
		}
	})

	for i := len(exprOrder) - 1; i >= 0; i-- {
		e := exprOrder[i]
		if _, ok := blockOf[e]; ok {
			continue // Param, already seeded to its owning block
		}

		var parent *cps.Block
		fold := func(b *cps.Block) {
			if parent == nil {
				parent = b
			} else {
				parent = tree.LCA(parent, b)
			}
		}
		for _, use := range useExprs[e] {
			fold(blockOf[use])
		}
		for _, use := range useTransfers[e] {
			fold(transferBlock[use])
		}

		if parent == nil {
			parent = fn.Entry
		}
		blockOf[e] = parent
	}

	return &Schedule{blockOf: blockOf}
}

// BucketByBlock groups every Expr reachable from fn's body under the
// Block sched placed it in, each list ordered so a definition always
// precedes its uses within that list. An Expr is visited once across
// the whole Fn regardless of how many Blocks reference it, which is
// what lets internal/target's lowering pass and FormatFn both treat a
// value shared by two branches of an If as defined once, in whichever
// Block dominates both uses, instead of once per branch.
func BucketByBlock(fn *cps.Fn, sched *Schedule) map[*cps.Block][]cps.Expr {
	out := make(map[*cps.Block][]cps.Expr)
	visited := make(map[cps.Expr]bool)

	var visit func(e cps.Expr, fallback *cps.Block)
	visit = func(e cps.Expr, fallback *cps.Block) {
		if visited[e] {
			return
		}
		visited[e] = true
		for _, operand := range e.Operands() {
			visit(operand, fallback)
		}
		b, ok := sched.BlockOf(e)
		if !ok {
			b = fallback
		}
		out[b] = append(out[b], e)
	}

	fn.PostVisitBlocks(func(b *cps.Block) {
		for _, operand := range b.Transfer.Operands() {
			visit(operand, b)
		}
	})

	return out
}
