package cmd

import (
	"fmt"
	"os"

	"github.com/brmh/fnlc/internal/driver"
	"github.com/spf13/cobra"
)

var (
	compileOutput     string
	compileEmitCPS    bool
	compileEmitTarget string
	compileFilter     string
	compileSkipLink   bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file to a native object or executable",
	Long: `Compile runs the full pipeline: parse, type-check, convert to
CPS, build the dominator tree, schedule floating nodes, and lower to
the target module, then hand the result to the configured Emitter.

Examples:
  # Compile and link a program
  fnlc compile program.fn -o program

  # Compile to an object file only, without invoking the linker
  fnlc compile program.fn --skip-link

  # Inspect the scheduled CPS IR
  fnlc compile program.fn --emit-cps`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output path (default: output)")
	compileCmd.Flags().BoolVar(&compileEmitCPS, "emit-cps", false, "print the scheduled CPS IR to stderr")
	compileCmd.Flags().StringVar(&compileEmitTarget, "emit-target", "", "print the lowered target module (\"text\" or \"json\")")
	compileCmd.Flags().StringVar(&compileFilter, "filter", "", "gjson path applied to --emit-target=json output")
	compileCmd.Flags().BoolVar(&compileSkipLink, "skip-link", false, "stop after writing the object file")
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := driver.LoadConfig("fnlc.yaml")
	if err != nil {
		return fmt.Errorf("failed to load fnlc.yaml: %w", err)
	}

	opts := driver.Options{
		OutputPath: compileOutput,
		EmitCPS:    compileEmitCPS,
		EmitTarget: compileEmitTarget,
		Filter:     compileFilter,
		SkipLink:   compileSkipLink,
	}

	result, cerr := driver.Compile(path, opts, cfg)
	if cerr != nil {
		fmt.Fprintln(os.Stderr, cerr.Format())
		return fmt.Errorf("compilation failed")
	}

	if compileEmitCPS {
		fmt.Fprintln(os.Stderr, result.CPSText)
	}
	if compileEmitTarget != "" {
		fmt.Println(result.TargetText)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", result.ObjectPath)
		if result.Linked {
			fmt.Fprintf(os.Stderr, "linked -> %s\n", outputOrDefault(compileOutput))
		}
	} else if result.Linked {
		fmt.Printf("Compiled %s -> %s\n", path, outputOrDefault(compileOutput))
	} else {
		fmt.Printf("Compiled %s -> %s\n", path, result.ObjectPath)
	}

	return nil
}

func outputOrDefault(out string) string {
	if out == "" {
		return "output"
	}
	return out
}
