package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/MOYARU/krs/internal/app/ui"
	msges "github.com/MOYARU/krs/internal/messages"
	"github.com/MOYARU/krs/internal/report"
)

var progressMu sync.Mutex

// PrintEvalProgress updates the component evaluation progress on one line.
func PrintEvalProgress(current, total int, componentName string) {
	progressMu.Lock()
	defer progressMu.Unlock()

	if total <= 0 {
		fmt.Printf("\r [------------------------------] 0%% [0/0]: %s\033[K", componentName)
		return
	}

	percentage := float64(current) / float64(total) * 100
	if len(componentName) > 40 {
		componentName = componentName[:37] + "..."
	}
	width := 30
	filled := int(float64(width) * (float64(current) / float64(total)))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	fmt.Printf("\r [%s] %.0f%% [%d/%d]: %s\033[K", bar, percentage, current, total, componentName)
}

// PrintComponentResults prints the per-component breakdown with score colors.
func PrintComponentResults(r *report.Report) {
	fmt.Printf("\n%s%s%s\n", ui.ColorWhite, msges.GetUIMessage("ResultsTitle"), ui.ColorReset)

	printCategory := func(title string, results []report.ComponentResult) {
		fmt.Printf("\n%s%s%s\n", ui.ColorWhite, title, ui.ColorReset)
		for _, c := range results {
			scoreColor := ui.ColorForScore(c.Scores.Overall)
			fmt.Printf("\n%s%s%s %s(weight %d, %s)%s\n",
				scoreColor, displayName(c.Name), ui.ColorReset,
				ui.ColorGray, c.Weight, c.Criticality, ui.ColorReset)
			fmt.Printf("%s - Overall: %s%.1f%%%s\n", ui.ColorGray, scoreColor, c.Scores.Overall, ui.ColorReset)
			fmt.Printf("%s - Evidence: %d matches in %d files (%.1f%%)%s\n",
				ui.ColorGray, c.Evidence.TotalMatches, c.Evidence.MatchedFiles, c.Scores.Evidence, ui.ColorReset)
			fmt.Printf("%s - Functions: %d/%d (%.1f%%)%s\n",
				ui.ColorGray, c.Functions.Found, c.Functions.Target, c.Scores.Functions, ui.ColorReset)
			fmt.Printf("%s - SLOC: %d/%d (%.1f%%)%s\n",
				ui.ColorGray, c.SLOC.Found, c.SLOC.Target, c.Scores.SLOC, ui.ColorReset)
		}
	}

	printCategory("Kernel Primitives", r.Kernel)
	printCategory("OS Platform Services", r.OS)
}

// PrintSummary prints category scores, classification, and the needs-work
// tree for below-threshold components.
func PrintSummary(r *report.Report, gaps []report.Gap, threshold float64, limit int) {
	fmt.Printf("\n%s%s%s\n\n", ui.ColorWhite, msges.GetUIMessage("SummaryTitle"), ui.ColorReset)

	kColor := ui.ColorForScore(r.Summary.KernelScore)
	oColor := ui.ColorForScore(r.Summary.OSScore)
	aColor := ui.ColorForScore(r.Summary.OverallScore)
	fmt.Printf("%s%s%s\n", kColor, msges.GetUIMessage("KernelScore", r.Summary.KernelScore), ui.ColorReset)
	fmt.Printf("%s%s%s\n", oColor, msges.GetUIMessage("OSScore", r.Summary.OSScore), ui.ColorReset)
	fmt.Printf("%s%s%s\n", aColor, msges.GetUIMessage("OverallScore", r.Summary.OverallScore), ui.ColorReset)
	fmt.Printf("%s%s%s\n", ui.ColorWhite, msges.GetUIMessage("Classification", r.Summary.Classification, r.Summary.Rationale), ui.ColorReset)
	fmt.Printf("%s%s%s\n", ui.ColorGray, msges.GetUIMessage("FilesScanned", r.Summary.FilesScanned), ui.ColorReset)

	fmt.Println()
	if len(gaps) == 0 {
		fmt.Printf("%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("NoGaps"), ui.ColorReset)
		return
	}

	fmt.Printf("%s%s%s\n", ui.ColorWhite, msges.GetUIMessage("NeedsWorkTitle", threshold), ui.ColorReset)
	if limit > len(gaps) {
		limit = len(gaps)
	}
	for i := 0; i < limit; i++ {
		g := gaps[i]
		guidance := msges.GetGuidance(g.Component)
		prefix := " \t|--"
		if i == limit-1 {
			prefix = " \t`--"
		}
		scoreColor := ui.ColorForScore(g.Score)
		fmt.Printf("%s %s[%.1f%%]%s %s %s(gap: %d functions, %d SLOC)%s\n",
			prefix, scoreColor, g.Score, ui.ColorReset, guidance.Title,
			ui.ColorGray, g.FunctionsGap, g.SLOCGap, ui.ColorReset)
		fmt.Printf(" \t    %s%s%s\n", ui.ColorGray, guidance.Fix, ui.ColorReset)
	}
	if remaining := len(gaps) - limit; remaining > 0 {
		fmt.Printf(" \t`-- %s... and %d more components%s\n", ui.ColorGray, remaining, ui.ColorReset)
	}
}

// SaveJSONReport writes the full report document to a timestamped file in
// the working directory and returns its name.
func SaveJSONReport(r *report.Report) (string, error) {
	filename := reportFilename(r.Target, "json")

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return "", err
	}
	return filename, nil
}

func reportFilename(target, ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	sanitized := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_", ".", "_").Replace(strings.Trim(target, "/\\."))
	if sanitized == "" {
		sanitized = "source"
	}
	return fmt.Sprintf("krs_report_%s_%s.%s", sanitized, timestamp, ext)
}

func displayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
