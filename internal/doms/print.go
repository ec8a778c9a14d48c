package doms

import (
	"strings"

	"github.com/brmh/fnlc/internal/cps"
)

// Format renders tree as one "block -> idom" line per block, in
// dominator preorder, for the dump-doms CLI subcommand — a plain
// textual view of the structure internal/target's block declaration
// order and internal/schedule's LCA placement both depend on.
func Format(fn *cps.Fn, tree *Tree) string {
	var sb strings.Builder
	sb.WriteString("fun ")
	sb.WriteString(fn.Name().String())
	sb.WriteByte('\n')

	for _, b := range tree.Preorder() {
		sb.WriteString("  ")
		sb.WriteString(b.Name().String())
		if idom, ok := tree.Idom(b); ok && idom != b {
			sb.WriteString(" -> ")
			sb.WriteString(idom.Name().String())
		} else {
			sb.WriteString(" -> <entry>")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
