package evaluate

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MOYARU/krs/internal/app/output"
	"github.com/MOYARU/krs/internal/app/ui"
	"github.com/MOYARU/krs/internal/config"
	"github.com/MOYARU/krs/internal/engine"
	msges "github.com/MOYARU/krs/internal/messages"
	"github.com/MOYARU/krs/internal/report"
	"github.com/MOYARU/krs/internal/rubric"
	appver "github.com/MOYARU/krs/internal/version"
)

// Options control one evaluation run.
type Options struct {
	RubricPath string   // empty means the built-in rubric
	Extensions []string // empty means engine.DefaultExtensions
	JSONOutput bool
	HTMLOutput bool
	Quiet      bool // suppress console rendering (interactive re-runs)
}

// Run evaluates the source tree at target against the rubric and renders
// the report. Scoring always exits cleanly; only configuration and
// filesystem access failures return an error.
func Run(target string, opts Options) error {
	rb, rubricName, err := loadRubric(opts.RubricPath)
	if err != nil {
		return err
	}

	// Setup context with cancellation on Ctrl+C.
	ctx, cancel := ui.WaitForCancel(context.Background())
	defer cancel()

	policy := config.LoadEnginePolicy()
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = append(engine.DefaultExtensions, policy.ExtraExtensions...)
	}

	fmt.Printf("%s%s%s\n", ui.ColorWhite, msges.GetUIMessage("Target", target), ui.ColorReset)
	fmt.Printf("%s%s%s\n", ui.ColorGray, msges.GetUIMessage("Rubric", rubricName, len(rb.Components)), ui.ColorReset)

	startTime := time.Now()

	stopDots := startStatusDots(ctx, msges.GetUIMessage("StatusScanning"))
	scanResult, err := engine.Scan(ctx, target, extensions)
	stopDots()
	if err != nil {
		if ctx.Err() != nil {
			fmt.Printf("%s%s%s\n", ui.ColorYellow, msges.GetUIMessage("ScanCancelled"), ui.ColorReset)
			return nil
		}
		return err
	}

	fmt.Printf("%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("FilesFound", len(scanResult.Files), len(scanResult.Skipped)), ui.ColorReset)
	if scanResult.Empty() {
		fmt.Printf("%s%s%s\n", ui.ColorYellow, msges.GetUIMessage("NoSourceFiles"), ui.ColorReset)
	}

	results, err := evaluateComponents(ctx, rb, scanResult, policy.MaxConcurrency)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Printf("%s%s%s\n", ui.ColorYellow, msges.GetUIMessage("ScanCancelled"), ui.ColorReset)
			return nil
		}
		return err
	}

	rep, err := assembleReport(target, rubricName, results, scanResult, startTime)
	if err != nil {
		return err
	}

	elapsed := rep.EndTime.Sub(rep.StartTime).Seconds()
	fmt.Printf("\n%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("AllComponentsEvaluated"), ui.ColorReset)
	fmt.Printf("%s%s%s\n", ui.ColorGray, msges.GetUIMessage("EvaluationTime", elapsed), ui.ColorReset)

	if len(scanResult.Skipped) > 0 {
		fmt.Printf("\n%s%s%s\n", ui.ColorYellow, msges.GetUIMessage("SkipWarningsTitle"), ui.ColorReset)
		for _, warning := range scanResult.Skipped {
			fmt.Printf(" - %s\n", warning)
		}
	}

	gaps := report.GapAnalysis(rep, policy.FollowUpThreshold)

	if !opts.Quiet {
		output.PrintComponentResults(rep)
	}
	output.PrintSummary(rep, gaps, policy.FollowUpThreshold, policy.TopGapsLimit)

	if opts.JSONOutput {
		if filename, err := output.SaveJSONReport(rep); err != nil {
			fmt.Printf("%s%s%s\n", ui.ColorRed, msges.GetUIMessage("JSONReportFailed", err), ui.ColorReset)
		} else {
			fmt.Printf("\n%s\n", msges.GetUIMessage("JSONReportSaved", filename))
		}
	}

	if opts.HTMLOutput {
		if filename, err := output.SaveHTMLReport(rep, gaps); err != nil {
			fmt.Printf("%s%s%s\n", ui.ColorRed, msges.GetUIMessage("HTMLReportFailed", err), ui.ColorReset)
		} else {
			fmt.Printf("%s\n", msges.GetUIMessage("HTMLReportSaved", filename))
		}
	}
	return nil
}

func loadRubric(path string) (*rubric.Rubric, string, error) {
	if path == "" {
		rb, err := rubric.Default()
		if err != nil {
			return nil, "", err
		}
		name := rb.Name
		if name == "" {
			name = "default"
		}
		return rb, name + " (built-in)", nil
	}
	rb, err := rubric.Load(path)
	if err != nil {
		return nil, "", err
	}
	return rb, path, nil
}

// evaluateComponents runs evidence matching, counting, and scoring for every
// rubric component on a bounded worker pool. Workers only read the immutable
// scan result and write their own result slot, so the only shared state is
// the progress counter.
func evaluateComponents(ctx context.Context, rb *rubric.Rubric, scanResult *engine.ScanResult, workerCount int) ([]report.ComponentResult, error) {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	if workerCount > len(rb.Components) {
		workerCount = len(rb.Components)
	}

	total := len(rb.Components)
	results := make([]report.ComponentResult, total)
	var completed int32
	output.PrintEvalProgress(0, total, "ready")

	type job struct {
		index     int
		component rubric.Component
	}
	jobs := make(chan job)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case j, ok := <-jobs:
				if !ok {
					return
				}
				results[j.index] = evaluateComponent(j.component, scanResult)
				n := atomic.AddInt32(&completed, 1)
				output.PrintEvalProgress(int(n), total, j.component.Name)
			}
		}
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go worker()
	}

	for i, c := range rb.Components {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- job{index: i, component: c}:
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return results, nil
}

func evaluateComponent(c rubric.Component, scanResult *engine.ScanResult) report.ComponentResult {
	ev := engine.MatchEvidence(c, scanResult)
	functions, sloc := engine.CountStructure(scanResult, ev.Files)
	scores := engine.ScoreComponent(c, ev, functions, sloc)

	return report.ComponentResult{
		Name:        c.Name,
		Category:    string(c.Category),
		Weight:      c.Weight,
		Criticality: c.Criticality,
		Description: c.Description,
		Evidence: report.EvidenceDetail{
			TotalMatches: ev.Total,
			MatchedFiles: len(ev.Files),
			CueMatches:   ev.CueMatches,
			Files:        ev.Files,
		},
		Functions: report.Metric{Found: functions, Target: c.TargetFunctions, Score: scores.Functions},
		SLOC:      report.Metric{Found: sloc, Target: c.TargetSLOC, Score: scores.SLOC},
		Scores:    scores,
	}
}

func assembleReport(target, rubricName string, results []report.ComponentResult, scanResult *engine.ScanResult, startTime time.Time) (*report.Report, error) {
	rep := &report.Report{
		Generator:    appver.Generator(),
		Target:       target,
		Rubric:       rubricName,
		StartTime:    startTime,
		SkipWarnings: scanResult.Skipped,
	}
	for _, r := range results {
		if r.Category == string(rubric.CategoryKernel) {
			rep.Kernel = append(rep.Kernel, r)
		} else {
			rep.OS = append(rep.OS, r)
		}
	}

	kernelScore, err := engine.AggregateCategory(rubric.CategoryKernel, results)
	if err != nil {
		return nil, err
	}
	osScore, err := engine.AggregateCategory(rubric.CategoryOS, results)
	if err != nil {
		return nil, err
	}
	classification, rationale := engine.Classify(kernelScore, osScore)

	rep.EndTime = time.Now()
	rep.Summary = report.Summary{
		KernelScore:    kernelScore,
		OSScore:        osScore,
		OverallScore:   engine.OverallScore(kernelScore, osScore),
		Classification: classification,
		Rationale:      rationale,
		FilesScanned:   len(scanResult.Files),
		FilesSkipped:   len(scanResult.Skipped),
	}
	return rep, nil
}

func startStatusDots(ctx context.Context, base string) func() {
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		dots := 0
		for {
			select {
			case <-ctx.Done():
				fmt.Printf("\r%s%s%s\033[K\n", ui.ColorGray, base, ui.ColorReset)
				return
			case <-stopCh:
				fmt.Printf("\r%s%s%s\033[K\n", ui.ColorGray, base, ui.ColorReset)
				return
			case <-ticker.C:
				dots = (dots + 1) % 4
				fmt.Printf("\r%s%s%s%s\033[K", ui.ColorGray, base, strings.Repeat(".", dots), ui.ColorReset)
			}
		}
	}()

	return func() {
		close(stopCh)
		<-doneCh
	}
}
