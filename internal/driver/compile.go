package driver

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/brmh/fnlc/internal/checker"
	"github.com/brmh/fnlc/internal/cps"
	"github.com/brmh/fnlc/internal/doms"
	"github.com/brmh/fnlc/internal/errors"
	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/lexer"
	"github.com/brmh/fnlc/internal/schedule"
	"github.com/brmh/fnlc/internal/srcast"
	"github.com/brmh/fnlc/internal/target"
	"github.com/brmh/fnlc/internal/tocps"
	"github.com/brmh/fnlc/internal/types"
)

// Options controls what Compile produces beyond the linked executable
// itself: compile's --emit-cps/--emit-target flags (and run's call
// into Compile) funnel through this struct. The dump-* subcommands
// call their own driver entry points and do not use it.
type Options struct {
	// OutputPath is the final executable's path. Empty means
	// "output", per spec §6's CLI contract.
	OutputPath string

	// EmitCPS, when true, populates Result.CPSText with the scheduled
	// pretty-print of every function (internal/schedule.FormatFn).
	EmitCPS bool

	// EmitTarget selects a dump of the lowered target module:
	// "text" for the disassembly, "json" for DumpJSON, "" for none.
	EmitTarget string

	// Filter is a gjson dot-path applied to the JSON dump when
	// EmitTarget == "json"; ignored otherwise.
	Filter string

	// SkipLink, when true, stops after writing the object file —
	// spec §6's "-o OUT" contract without the final cc invocation.
	SkipLink bool
}

// Result carries everything a CLI command might want to print or
// write after a successful Compile.
type Result struct {
	CPSText    string
	TargetText string
	ObjectPath string
	Linked     bool
	Module     *target.Module
}

// ToCPS reads path and runs it through lexing, parsing, type checking,
// and CPS conversion, stopping short of scheduling or lowering — the
// stage dump-cps needs without paying for a target Emitter.
func ToCPS(path string) (*cps.Program, *errors.CompilerError) {
	src, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return nil, errors.New(errors.Lex, lexSpanFor(path), fmt.Sprintf("cannot read %s: %v", path, ioErr), "")
	}
	source := string(src)

	names := ident.New()
	reg := types.NewRegistry(names)

	p := srcast.New(path, source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}

	fastProg, terr := checker.Check(prog, names, reg, source)
	if terr != nil {
		return nil, terr
	}

	return tocps.Convert(fastProg, names, reg), nil
}

// DumpCPS renders path's scheduled CPS IR, per spec §9's reinstated
// pretty-printer.
func DumpCPS(path string) (string, *errors.CompilerError) {
	cpsProg, err := ToCPS(path)
	if err != nil {
		return "", err
	}
	return formatCPS(cpsProg), nil
}

// DumpDoms renders path's dominator tree, one "block -> idom" line per
// function per block.
func DumpDoms(path string) (string, *errors.CompilerError) {
	cpsProg, err := ToCPS(path)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, fn := range cpsProg.Externs {
		sb.WriteString(doms.Format(fn, doms.Build(fn)))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Lower runs path all the way through target lowering and structural
// verification, returning the resulting Module.
func Lower(path string) (*target.Module, *errors.CompilerError) {
	cpsProg, err := ToCPS(path)
	if err != nil {
		return nil, err
	}

	em := target.NewSim()
	mod := target.Lower(cpsProg, em)
	if verr := target.Verify(mod); len(verr) > 0 {
		return nil, verr[0]
	}
	return mod, nil
}

// DumpTarget renders path's lowered target module, as disassembly
// ("text") or as JSON ("json"), optionally narrowed by a gjson filter
// path.
func DumpTarget(path, format, filter string) (string, *errors.CompilerError) {
	mod, err := Lower(path)
	if err != nil {
		return "", err
	}

	switch format {
	case "json":
		raw, jerr := target.DumpJSON(mod, path)
		if jerr != nil {
			return "", errors.New(errors.Lowering, lexSpanFor(path), jerr.Error(), "")
		}
		if filter != "" {
			return target.Filter(raw, filter), nil
		}
		return string(raw), nil
	default:
		return mod.String(), nil
	}
}

// Compile runs path through the full pipeline described by spec §4.8:
// parse, check, CPS-convert, lower, emit. It returns the first
// CompilerError encountered, from whichever stage produced it, ready
// to be formatted and the process exited nonzero (spec §7).
func Compile(path string, opts Options, cfg *Config) (*Result, *errors.CompilerError) {
	cpsProg, err := ToCPS(path)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if opts.EmitCPS {
		result.CPSText = formatCPS(cpsProg)
	}

	em := target.NewSim()
	mod := target.Lower(cpsProg, em)
	mod.TargetTriple = cfg.TargetTriple
	if cfg.Optimize {
		target.Optimize(mod)
	}
	result.Module = mod

	if verr := target.Verify(mod); len(verr) > 0 {
		return nil, verr[0]
	}

	switch opts.EmitTarget {
	case "text":
		result.TargetText = mod.String()
	case "json":
		raw, jerr := target.DumpJSON(mod, path)
		if jerr != nil {
			return nil, errors.New(errors.Lowering, lexSpanFor(path), jerr.Error(), "")
		}
		if opts.Filter != "" {
			result.TargetText = target.Filter(raw, opts.Filter)
		} else {
			result.TargetText = string(raw)
		}
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = "output"
	}
	objPath := outPath + ".o"
	if err := em.WriteObject(mod, objPath); err != nil {
		return nil, errors.New(errors.Link, lexSpanFor(path), err.Error(), "")
	}
	result.ObjectPath = objPath

	if opts.SkipLink || !em.SupportsLinking() {
		return result, nil
	}

	if err := link(objPath, outPath); err != nil {
		return nil, errors.New(errors.Link, lexSpanFor(path), err.Error(), "")
	}
	os.Remove(objPath)
	result.Linked = true
	return result, nil
}

// link invokes the C linker per spec §6's "Linker is invoked as
// cc -o OUT OUT.o" — reached only when the Emitter reports
// SupportsLinking true. Compile always lowers with Sim, which never
// does, so no test or CLI path currently reaches it.
func link(objPath, outPath string) error {
	cmd := exec.Command("cc", "-o", outPath, objPath)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cc -o %s %s: %w", outPath, objPath, err)
	}
	return nil
}

// formatCPS pretty-prints every external function in prog, scheduled,
// per spec §9's "supplemented feature" of reinstating the CPS
// pretty-printer dropped by the original distillation.
func formatCPS(prog *cps.Program) string {
	var sb strings.Builder
	for _, fn := range prog.Externs {
		tree := doms.Build(fn)
		sched := schedule.Late(fn, tree)
		sb.WriteString(schedule.FormatFn(fn, tree, sched))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// lexSpanFor builds a file-only span for diagnostics raised before any
// source position exists to point at (a missing file, a link failure).
func lexSpanFor(path string) lexer.Span {
	return lexer.Span{File: path}
}
