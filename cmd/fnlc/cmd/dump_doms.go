package cmd

import (
	"fmt"
	"os"

	"github.com/brmh/fnlc/internal/driver"
	"github.com/spf13/cobra"
)

var dumpDomsCmd = &cobra.Command{
	Use:   "dump-doms [file]",
	Short: "Print the dominator tree for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		out, err := driver.DumpDoms(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Format())
			return fmt.Errorf("dump-doms failed")
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpDomsCmd)
}
