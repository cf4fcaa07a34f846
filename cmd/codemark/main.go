package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"codemark/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "codemark",
	Short: "Render compiler-style diagnostics for source files",
	Long:  `Codemark renders diagnostics as annotated source snippets: headers, gutters, underlines, multi-line brackets, and notes`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
