package cmd

import (
	"fmt"
	"os"

	"github.com/brmh/fnlc/internal/driver"
	"github.com/spf13/cobra"
)

var (
	dumpTargetFormat string
	dumpTargetFilter string
)

var dumpTargetCmd = &cobra.Command{
	Use:   "dump-target [file]",
	Short: "Print the lowered target module for a source file",
	Long: `Print the module internal/target.Lower produces, either as a
disassembly listing or as JSON (optionally narrowed with a gjson path
via --filter).

Examples:
  fnlc dump-target program.fn
  fnlc dump-target program.fn --format json --filter functions.0.name`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		out, err := driver.DumpTarget(args[0], dumpTargetFormat, dumpTargetFilter)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Format())
			return fmt.Errorf("dump-target failed")
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpTargetCmd)

	dumpTargetCmd.Flags().StringVar(&dumpTargetFormat, "format", "text", "output format: text or json")
	dumpTargetCmd.Flags().StringVar(&dumpTargetFilter, "filter", "", "gjson path applied when --format=json")
}
