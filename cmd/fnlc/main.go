// Command fnlc compiles the typed functional language described by
// internal/checker, internal/cps, internal/doms, internal/schedule, and
// internal/target down to a lowered SSA target module.
package main

import (
	"fmt"
	"os"

	"github.com/brmh/fnlc/cmd/fnlc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
