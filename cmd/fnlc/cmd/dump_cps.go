package cmd

import (
	"fmt"
	"os"

	"github.com/brmh/fnlc/internal/driver"
	"github.com/spf13/cobra"
)

var dumpCPSCmd = &cobra.Command{
	Use:   "dump-cps [file]",
	Short: "Print the scheduled CPS IR for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		out, err := driver.DumpCPS(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Format())
			return fmt.Errorf("dump-cps failed")
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCPSCmd)
}
