package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/brmh/fnlc/internal/driver"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute a source file",
	Long: `Run compiles file exactly as "fnlc compile" does, then executes
the resulting binary when the configured Emitter supports linking.

The bundled Emitter (internal/target.Sim) never does — it produces a
textual placeholder object for inspection, not a linkable one — so
"fnlc run" against it reports that the emitted object isn't
executable rather than silently doing nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := driver.LoadConfig("fnlc.yaml")
	if err != nil {
		return fmt.Errorf("failed to load fnlc.yaml: %w", err)
	}

	tmpOut, tmpErr := os.MkdirTemp("", "fnlc-run-")
	if tmpErr != nil {
		return fmt.Errorf("failed to create temp directory: %w", tmpErr)
	}
	defer os.RemoveAll(tmpOut)
	outPath := tmpOut + "/a.out"

	result, cerr := driver.Compile(path, driver.Options{OutputPath: outPath}, cfg)
	if cerr != nil {
		fmt.Fprintln(os.Stderr, cerr.Format())
		return fmt.Errorf("compilation failed")
	}

	if !result.Linked {
		fmt.Fprintf(os.Stderr, "object written to %s; the configured Emitter cannot link, so there is nothing to run\n", result.ObjectPath)
		return nil
	}

	proc := exec.Command(outPath)
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	return proc.Run()
}
