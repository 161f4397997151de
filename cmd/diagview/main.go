package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/0xMiden/miden-diagnostics/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "diagview",
	Short: "Preview compiler diagnostics against real source files",
	Long:  `diagview renders sample diagnostics so renderer changes can be inspected without a host compiler`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
