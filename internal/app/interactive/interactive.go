package interactive

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/MOYARU/krs/internal/app/evaluate"
	"github.com/MOYARU/krs/internal/app/ui"
	"github.com/MOYARU/krs/internal/config"
	"github.com/MOYARU/krs/internal/engine"
	msges "github.com/MOYARU/krs/internal/messages"
	"github.com/spf13/cobra"
)

// RunInteractiveMode runs the prompt loop used when krs is started without a
// target path.
func RunInteractiveMode(cmdObj *cobra.Command) {
	ui.PrintGradientAsciiArt()

	helpText := strings.Replace(cmdObj.Long, ui.AsciiArt, "", 1)
	fmt.Println(helpText)

	fmt.Println()
	fmt.Printf("%s%s%s\n", ui.ColorGray, msges.GetUIMessage("InteractiveWelcome"), ui.ColorReset)

	var rubricPath string
	var extensions []string

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%skrs>%s ", ui.ColorYellow, ui.ColorReset)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "evaluate", "eval":
			if len(fields) < 2 {
				fmt.Println("usage: evaluate <path> [rubric-file]")
				continue
			}
			opts := evaluate.Options{RubricPath: rubricPath, Extensions: extensions}
			if len(fields) >= 3 {
				opts.RubricPath = fields[2]
			}
			if opts.RubricPath == "" {
				ok, err := ui.Confirm(msges.GetUIMessage("InteractiveNoRubric"))
				if err != nil || !ok {
					continue
				}
			}
			if err := evaluate.Run(fields[1], opts); err != nil {
				fmt.Printf("%s%s%s\n", ui.ColorRed, msges.GetUIMessage("EvaluateFailed", err), ui.ColorReset)
			}

		case "rubric":
			if len(fields) < 2 {
				if rubricPath == "" {
					fmt.Println("rubric: built-in default")
				} else {
					fmt.Println("rubric:", rubricPath)
				}
				continue
			}
			if _, err := os.Stat(fields[1]); err != nil {
				fmt.Printf("%srubric file not found: %s%s\n", ui.ColorRed, fields[1], ui.ColorReset)
				continue
			}
			rubricPath = fields[1]
			fmt.Println("rubric set to", rubricPath)

		case "exts":
			if len(fields) < 2 {
				if len(extensions) == 0 {
					fmt.Println("extensions:", strings.Join(engine.DefaultExtensions, " "))
				} else {
					fmt.Println("extensions:", strings.Join(extensions, " "))
				}
				continue
			}
			extensions = fields[1:]
			fmt.Println("extensions set to", strings.Join(extensions, " "))

		case "policy":
			p := config.LoadEnginePolicy()
			fmt.Printf("max_concurrency: %d (0 = one per CPU)\n", p.MaxConcurrency)
			fmt.Printf("follow_up_threshold: %.0f\n", p.FollowUpThreshold)
			fmt.Printf("top_gaps_limit: %d\n", p.TopGapsLimit)
			if len(p.ExtraExtensions) > 0 {
				fmt.Printf("extra_extensions: %s\n", strings.Join(p.ExtraExtensions, " "))
			}

		case "help":
			fmt.Println("commands:")
			fmt.Println("  evaluate <path> [rubric]  score a source tree")
			fmt.Println("  rubric [file]             show or set the rubric file")
			fmt.Println("  exts [.c .h ...]          show or set the extension allowlist")
			fmt.Println("  policy                    show the engine policy (.krs.yaml)")
			fmt.Println("  exit                      leave")

		case "exit", "quit":
			fmt.Printf("%s%s%s\n", ui.ColorGray, msges.GetUIMessage("InteractiveBye"), ui.ColorReset)
			return

		default:
			fmt.Printf("unknown command %q, try 'help'\n", fields[0])
		}
	}
}
