// Command vhdlsimp drives the simplification pass over previously parsed,
// serialized VHDL trees (internal/ir's `.vhdlir` format, spec.md §4.1.5):
// scan for inputs, simplify each top-level unit, render diagnostics, and
// optionally persist the run. It never parses VHDL source itself — the
// lexer/parser is an external collaborator out of scope for this repo
// (spec.md §1, §6) — mirroring the teacher's cmd/morfx/main.go layering a
// cobra command tree over its scanner/provider/runner packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termfx/vhdlcore/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vhdlsimp",
		Short:         "Simplify serialized VHDL design trees",
		Long:          "vhdlsimp runs the local/global simplification pass over internal/ir-serialized VHDL trees, reporting diagnostics and optionally persisting the run.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.LoadEnv().RegisterFlags(root.PersistentFlags())

	root.AddCommand(newCheckCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newSessionsCmd())
	return root
}
