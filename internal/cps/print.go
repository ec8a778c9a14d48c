package cps

import (
	"strconv"
	"strings"
)

// Describe renders the right-hand side of an Expr's definition line —
// "__addWI64(a, b)", "param x", a literal, and so on — referencing
// its operands by name rather than recursing into them. Callers that
// want a whole function body printed (internal/schedule's FormatFn)
// combine Describe with the scheduled placement of every Expr.
func Describe(e Expr) string {
	switch n := e.(type) {
	case *Param:
		return "param " + n.name.String()
	case *Bool:
		if n.Value {
			return "True"
		}
		return "False"
	case *I64:
		return strconv.FormatInt(n.Value, 10)
	case *PrimApp:
		var sb strings.Builder
		sb.WriteString("__")
		sb.WriteString(n.Op.String())
		sb.WriteByte('(')
		sb.WriteString(n.Args[0].Name().String())
		sb.WriteString(", ")
		sb.WriteString(n.Args[1].Name().String())
		sb.WriteByte(')')
		return sb.String()
	case *Fn:
		return "fun " + n.name.String()
	default:
		return "<?expr>"
	}
}

// DescribeTransfer renders a Block's terminating Transfer.
func DescribeTransfer(t Transfer) string {
	switch n := t.(type) {
	case *If:
		return "if " + n.Cond.Name().String() +
			"\n        then goto " + n.Conseq.Name().String() + "()" +
			"\n        else goto " + n.Alt.Name().String() + "()"
	case *Call:
		var sb strings.Builder
		sb.WriteString("call ")
		sb.WriteString(n.Callee().Name().String())
		sb.WriteByte('(')
		for i, arg := range n.Args() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.Name().String())
		}
		sb.WriteString(") -> ")
		sb.WriteString(n.Cont.Name().String())
		return sb.String()
	case *Goto:
		return "goto " + n.Dest.Name().String() + "(" + n.Res.Name().String() + ")"
	default:
		return "<?transfer>"
	}
}

// DescribeBlockHeader renders a Block's name and parameter list,
// e.g. "$3 (x$1 : i64, y$2 : bool):".
func DescribeBlockHeader(b *Block) string {
	var sb strings.Builder
	sb.WriteString(b.name.String())
	sb.WriteString(" (")
	for i, p := range b.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name().String())
		sb.WriteString(" : ")
		sb.WriteString(p.Type().String())
	}
	sb.WriteString("):")
	return sb.String()
}
