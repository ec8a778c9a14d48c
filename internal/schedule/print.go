package schedule

import (
	"strings"

	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/doms"
)

// FormatFn renders fn's whole body: every Block in dominator-tree
// preorder, each Expr scheduled into it printed as a definition line
// ("name = rhs"), followed by the Block's Transfer.
//
// Grouping by the computed schedule rather than by syntactic
// nesting is what makes this printer exercise internal/doms and
// internal/schedule instead of just internal/cps — an Expr shared by
// two branches of an If prints once, in whichever Block dominates both
// uses.
func FormatFn(fn *cps.Fn, tree *doms.Tree, sched *Schedule) string {
	exprsByBlock := BucketByBlock(fn, sched)

	var sb strings.Builder
	sb.WriteString("fun ")
	sb.WriteString(fn.Name().String())
	sb.WriteByte('\n')

	for _, b := range tree.Preorder() {
		sb.WriteString("  ")
		sb.WriteString(cps.DescribeBlockHeader(b))
		sb.WriteByte('\n')

		for _, e := range exprsByBlock[b] {
			if _, isParam := e.(*cps.Param); isParam {
				continue
			}
			sb.WriteString("    ")
			sb.WriteString(e.Name().String())
			sb.WriteString(" = ")
			sb.WriteString(cps.Describe(e))
			sb.WriteByte('\n')
		}

		sb.WriteString("    ")
		sb.WriteString(cps.DescribeTransfer(b.Transfer))
		sb.WriteByte('\n')
	}

	return sb.String()
}
