package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codemark/internal/diag"
	"codemark/internal/diagfmt"
	"codemark/internal/source"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <script.toml>",
	Short: "Render the diagnostics described by a TOML script",
	Long: `Render reads a TOML script listing source files (on disk or inline)
and diagnostics with labeled byte ranges, and prints the annotated snippets`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("style", "rich", "output style (rich|short)")
	renderCmd.Flags().Int("tab-width", 4, "columns a tab character occupies")
	renderCmd.Flags().Bool("ascii", false, "draw gutters and brackets with ASCII glyphs")
	renderCmd.Flags().Bool("dedup", false, "drop repeated diagnostics before rendering")
}

// runRender executes the "render" command: it loads the script, reads
// the referenced files, builds the diagnostics, and emits them in
// script order. The process exits non-zero when any rendered
// diagnostic is an error.
func runRender(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]

	styleStr, err := cmd.Flags().GetString("style")
	if err != nil {
		return fmt.Errorf("failed to get style flag: %w", err)
	}
	tabWidth, err := cmd.Flags().GetInt("tab-width")
	if err != nil {
		return fmt.Errorf("failed to get tab-width flag: %w", err)
	}
	ascii, err := cmd.Flags().GetBool("ascii")
	if err != nil {
		return fmt.Errorf("failed to get ascii flag: %w", err)
	}
	dedup, err := cmd.Flags().GetBool("dedup")
	if err != nil {
		return fmt.Errorf("failed to get dedup flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return fmt.Errorf("max-diagnostics must be non-negative, got %d", maxDiagnostics)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	cfg := diagfmt.DefaultConfig()
	switch styleStr {
	case "rich":
		cfg.Style = diagfmt.StyleRich
	case "short":
		cfg.Style = diagfmt.StyleShort
	default:
		return fmt.Errorf("unknown style: %s", styleStr)
	}
	if tabWidth < 1 {
		return fmt.Errorf("tab-width must be at least 1")
	}
	cfg.TabWidth = tabWidth
	if ascii {
		cfg.Chars = diagfmt.ASCIIChars()
	}

	script, err := loadRenderScript(scriptPath)
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	ids, err := loadScriptFiles(cmd.Context(), fileSet, script)
	if err != nil {
		return err
	}
	diagnostics, err := buildDiagnostics(script, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, d := range diagnostics {
		if !bag.Add(d) {
			break
		}
	}
	if dedup {
		bag.Dedup()
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	var out diagfmt.Surface
	if useColor {
		out = diagfmt.NewColorSurface(os.Stdout)
	} else {
		out = diagfmt.NewPlainSurface(os.Stdout)
	}

	for _, d := range bag.Items() {
		if err := diagfmt.Emit(out, &cfg, fileSet, d); err != nil {
			return fmt.Errorf("failed to render diagnostic: %w", err)
		}
	}

	if bag.HasErrors() {
		// Suppress cobra usage output when exiting on rendered errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
