package errors

import (
	"fmt"
	"strings"

	"github.com/brmh/fnlc/internal/lexer"
)

// Kind discriminates the five fail-fast error kinds this compiler
// reports.
type Kind int

const (
	Lex Kind = iota
	Parse
	Type
	Lowering
	Link
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "LexError"
	case Parse:
		return "ParseError"
	case Type:
		return "TypeError"
	case Lowering:
		return "LoweringError"
	case Link:
		return "LinkError"
	default:
		return "Error"
	}
}

// CompilerError is a single diagnostic with enough context to render
// "<ErrorKind> at <file>:<line>:<col>" followed by the offending
// span's source contents.
type CompilerError struct {
	Kind    Kind
	Span    lexer.Span
	Message string
	Source  string
}

// New builds a CompilerError. source is the whole file the span is
// drawn from, used only for caret rendering; it may be empty (e.g. for
// a LinkError, which has no source span).
func New(kind Kind, span lexer.Span, message, source string) *CompilerError {
	return &CompilerError{Kind: kind, Span: span, Message: message, Source: source}
}

func (e *CompilerError) Error() string { return e.Format() }

// Format renders e as kind, file:line:col, the offending message, and
// — when source text is available — the source line with a caret
// under the span's start column.
func (e *CompilerError) Format() string {
	var sb strings.Builder

	file := e.Span.File
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(&sb, "%s at %s:%d:%d: %s", e.Kind, file, e.Span.Start.Line, e.Span.Start.Column, e.Message)

	if line := sourceLine(e.Source, e.Span.Start.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Span.Start.Line)
		sb.WriteByte('\n')
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Span.Start.Column-1))
		sb.WriteByte('^')
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors, one Format block per error.
// No pass in this repository currently returns more than one.
func FormatAll(errs []*CompilerError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] %s", i+1, len(errs), e.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
