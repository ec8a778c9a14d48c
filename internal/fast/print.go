package fast

import (
	"strconv"
	"strings"
)

// Print renders e as surface-like syntax for diagnostics and tests,
// mirroring the print() method the
// original Expr hierarchy carried on every node.
func Print(e Expr) string {
	var sb strings.Builder
	printExpr(&sb, e)
	return sb.String()
}

func printExpr(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Id:
		sb.WriteString(n.Name.String())
	case *Bool:
		if n.Value {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case *I64:
		sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *PrimApp:
		sb.WriteString(n.Op.String())
		sb.WriteByte('(')
		printExpr(sb, n.Args[0])
		sb.WriteString(", ")
		printExpr(sb, n.Args[1])
		sb.WriteByte(')')
	case *Call:
		printExpr(sb, n.Callee)
		sb.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			printExpr(sb, arg)
		}
		sb.WriteByte(')')
	case *If:
		sb.WriteString("if ")
		printExpr(sb, n.Cond)
		sb.WriteString(" { ")
		printExpr(sb, n.Conseq)
		sb.WriteString(" } else { ")
		printExpr(sb, n.Alt)
		sb.WriteString(" }")
	case *Block:
		sb.WriteString("{ ")
		for _, stmt := range n.Stmts {
			printStmt(sb, stmt)
			sb.WriteString("; ")
		}
		printExpr(sb, n.Body)
		sb.WriteString(" }")
	default:
		sb.WriteString("<?expr>")
	}
}

func printStmt(sb *strings.Builder, s Stmt) {
	switch n := s.(type) {
	case *Val:
		sb.WriteString("val ")
		printPat(sb, n.Pat)
		sb.WriteString(" = ")
		printExpr(sb, n.ValExpr)
	default:
		sb.WriteString("<?stmt>")
	}
}

func printPat(sb *strings.Builder, p Pat) {
	switch n := p.(type) {
	case *IdPat:
		sb.WriteString(n.Name.String())
	default:
		sb.WriteString("<?pat>")
	}
}

// PrintDef renders a top-level Def the way FunDef::print did.
func PrintDef(d Def) string {
	var sb strings.Builder
	switch n := d.(type) {
	case *FunDef:
		sb.WriteString("fun ")
		sb.WriteString(n.Name.String())
		sb.WriteByte('(')
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name.String())
			sb.WriteString(": ")
			sb.WriteString(p.Type.String())
		}
		sb.WriteString(") -> ")
		sb.WriteString(n.Codomain.String())
		sb.WriteString(" { ")
		printExpr(&sb, n.Body)
		sb.WriteString(" }")
	default:
		sb.WriteString("<?def>")
	}
	return sb.String()
}
