/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/MOYARU/krs/internal/app/evaluate"
	"github.com/MOYARU/krs/internal/app/interactive"
	"github.com/MOYARU/krs/internal/app/ui"
	appver "github.com/MOYARU/krs/internal/version"
	"github.com/spf13/cobra"
)

var (
	version = appver.Value

	jsonOutput bool
	htmlOutput bool
	rubricFile string
	extList    string
)

var rootCmd = &cobra.Command{
	Use:   "krs [path] [rubric-file]",
	Short: "KRS scores a source tree against a rubric of kernel primitives and OS platform services, producing per-component completeness ratings, category aggregates, and a classification, using textual and structural heuristics only.",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			interactive.RunInteractiveMode(cmd)
			return
		}

		opts := evaluate.Options{
			RubricPath: rubricFile,
			JSONOutput: jsonOutput,
			HTMLOutput: htmlOutput,
		}
		if len(args) > 1 {
			opts.RubricPath = args[1]
		}
		if extList != "" {
			opts.Extensions = strings.Split(extList, ",")
		}

		if err := evaluate.Run(args[0], opts); err != nil {
			fmt.Printf("%sEvaluation failed: %v%s\n", ui.ColorRed, err, ui.ColorReset)
			os.Exit(1)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
func init() {
	rootCmd.Version = version

	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Write the report as a JSON file")
	rootCmd.Flags().BoolVar(&htmlOutput, "html", false, "Write the report as an HTML file")
	rootCmd.Flags().StringVar(&rubricFile, "rubric", "", "Rubric file (default: built-in rubric)")
	rootCmd.Flags().StringVar(&extList, "ext", "", "Comma-separated extension allowlist override (e.g. .c,.h,.rs)")

	rootCmd.Long = ui.AsciiArt + `
KRS is a lightweight kernel/OS completeness evaluator.

Usage:
   krs [path] [rubric-file] [flags]

Example:
  krs ./my-kernel
  krs ./my-kernel rubric.yaml
  krs ./my-kernel --json --html
  krs ./my-kernel --ext .c,.h,.rs

Flags:
  --json               Write the report as a JSON file
  --html               Write the report as an HTML file
  --rubric             Rubric file (default: built-in rubric)
  --ext                Comma-separated extension allowlist override

Scores are heuristic: keyword evidence, function-shaped definitions, and
source lines of code measured against rubric targets. Low scores exit 0;
only configuration and filesystem errors fail the command.
`
}
