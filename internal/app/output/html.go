package output

import (
	"fmt"
	"html/template"
	"os"

	msges "github.com/MOYARU/krs/internal/messages"
	"github.com/MOYARU/krs/internal/report"
)

type templateComponent struct {
	report.ComponentResult
	DisplayName string
	ScoreClass  string
}

type templateGap struct {
	report.Gap
	Title      string
	Fix        string
	ScoreClass string
}

// HTMLReportData feeds the report template.
type HTMLReportData struct {
	Generator      string
	Target         string
	Rubric         string
	ScanTime       string
	Duration       string
	KernelScore    float64
	KernelClass    string
	OSScore        float64
	OSClass        string
	OverallScore   float64
	OverallClass   string
	Classification string
	Rationale      string
	FilesScanned   int
	FilesSkipped   int
	Kernel         []templateComponent
	OS             []templateComponent
	Gaps           []templateGap
	SkipWarnings   []string
}

func scoreClass(score float64) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 30:
		return "mid"
	default:
		return "low"
	}
}

// SaveHTMLReport renders the report to a timestamped HTML file and returns
// its name.
func SaveHTMLReport(r *report.Report, gaps []report.Gap) (string, error) {
	data := HTMLReportData{
		Generator:      r.Generator,
		Target:         r.Target,
		Rubric:         r.Rubric,
		ScanTime:       r.StartTime.Format("2006-01-02 15:04:05"),
		Duration:       fmt.Sprintf("%.2fs", r.EndTime.Sub(r.StartTime).Seconds()),
		KernelScore:    r.Summary.KernelScore,
		KernelClass:    scoreClass(r.Summary.KernelScore),
		OSScore:        r.Summary.OSScore,
		OSClass:        scoreClass(r.Summary.OSScore),
		OverallScore:   r.Summary.OverallScore,
		OverallClass:   scoreClass(r.Summary.OverallScore),
		Classification: string(r.Summary.Classification),
		Rationale:      r.Summary.Rationale,
		FilesScanned:   r.Summary.FilesScanned,
		FilesSkipped:   r.Summary.FilesSkipped,
		SkipWarnings:   r.SkipWarnings,
	}
	for _, c := range r.Kernel {
		data.Kernel = append(data.Kernel, templateComponent{ComponentResult: c, DisplayName: displayName(c.Name), ScoreClass: scoreClass(c.Scores.Overall)})
	}
	for _, c := range r.OS {
		data.OS = append(data.OS, templateComponent{ComponentResult: c, DisplayName: displayName(c.Name), ScoreClass: scoreClass(c.Scores.Overall)})
	}
	for _, g := range gaps {
		guidance := msges.GetGuidance(g.Component)
		data.Gaps = append(data.Gaps, templateGap{Gap: g, Title: guidance.Title, Fix: guidance.Fix, ScoreClass: scoreClass(g.Score)})
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", err
	}

	filename := reportFilename(r.Target, "html")
	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return "", err
	}
	return filename, nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>KRS Evaluation Report - {{.Target}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f4f5f7; color: #1f2430; }
  .wrap { max-width: 1080px; margin: 0 auto; padding: 24px; }
  header { background: #1f2430; color: #fff; padding: 24px; }
  header h1 { margin: 0 0 4px; font-size: 22px; }
  header .meta { color: #aab2c5; font-size: 13px; }
  .cards { display: flex; gap: 16px; margin: 24px 0; flex-wrap: wrap; }
  .card { flex: 1; min-width: 180px; background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
  .card .label { font-size: 12px; color: #6b7280; text-transform: uppercase; letter-spacing: .05em; }
  .card .value { font-size: 28px; font-weight: 600; margin-top: 4px; }
  .value.high { color: #15803d; } .value.mid { color: #b45309; } .value.low { color: #b91c1c; }
  .badge { display: inline-block; padding: 4px 10px; border-radius: 999px; background: #eef2ff; color: #3730a3; font-size: 14px; font-weight: 600; }
  h2 { font-size: 16px; margin: 32px 0 8px; }
  table { width: 100%; border-collapse: collapse; background: #fff; border-radius: 8px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
  th, td { text-align: left; padding: 10px 12px; font-size: 13px; border-bottom: 1px solid #eef0f4; }
  th { background: #f9fafb; color: #6b7280; font-weight: 600; }
  .bar { background: #e5e7eb; border-radius: 4px; height: 8px; width: 140px; }
  .bar span { display: block; height: 8px; border-radius: 4px; }
  .bar .high { background: #22c55e; } .bar .mid { background: #f59e0b; } .bar .low { background: #ef4444; }
  .score.high { color: #15803d; } .score.mid { color: #b45309; } .score.low { color: #b91c1c; }
  .fix { color: #6b7280; font-size: 12px; }
  .warnings { color: #6b7280; font-size: 12px; }
  footer { color: #9ca3af; font-size: 12px; margin: 32px 0; }
</style>
</head>
<body>
<header>
  <div class="wrap">
    <h1>Kernel / OS Evaluation Report</h1>
    <div class="meta">Target: {{.Target}} &middot; Rubric: {{.Rubric}} &middot; {{.ScanTime}} &middot; {{.Duration}} &middot; {{.FilesScanned}} files scanned{{if .FilesSkipped}} ({{.FilesSkipped}} skipped){{end}}</div>
  </div>
</header>
<div class="wrap">
  <div class="cards">
    <div class="card"><div class="label">Kernel Primitives</div><div class="value {{.KernelClass}}">{{printf "%.1f" .KernelScore}}%</div></div>
    <div class="card"><div class="label">OS Services</div><div class="value {{.OSClass}}">{{printf "%.1f" .OSScore}}%</div></div>
    <div class="card"><div class="label">Overall</div><div class="value {{.OverallClass}}">{{printf "%.1f" .OverallScore}}%</div></div>
    <div class="card"><div class="label">Classification</div><div class="value"><span class="badge">{{.Classification}}</span></div><div class="fix">{{.Rationale}}</div></div>
  </div>

  {{define "componentTable"}}
  <table>
    <tr><th>Component</th><th>Weight</th><th>Criticality</th><th>Evidence</th><th>Functions</th><th>SLOC</th><th>Score</th><th></th></tr>
    {{range .}}
    <tr>
      <td>{{.DisplayName}}</td>
      <td>{{.Weight}}</td>
      <td>{{.Criticality}}</td>
      <td>{{.Evidence.TotalMatches}} in {{.Evidence.MatchedFiles}} files</td>
      <td>{{.Functions.Found}}/{{.Functions.Target}}</td>
      <td>{{.SLOC.Found}}/{{.SLOC.Target}}</td>
      <td class="score {{.ScoreClass}}">{{printf "%.1f" .Scores.Overall}}%</td>
      <td><div class="bar"><span class="{{.ScoreClass}}" style="width:{{printf "%.0f" .Scores.Overall}}%"></span></div></td>
    </tr>
    {{end}}
  </table>
  {{end}}

  <h2>Kernel Primitives</h2>
  {{template "componentTable" .Kernel}}

  <h2>OS Platform Services</h2>
  {{template "componentTable" .OS}}

  {{if .Gaps}}
  <h2>Components Needing Work</h2>
  <table>
    <tr><th>Component</th><th>Score</th><th>Weight</th><th>Functions Gap</th><th>SLOC Gap</th><th>Recommendation</th></tr>
    {{range .Gaps}}
    <tr>
      <td>{{.Title}}</td>
      <td class="score {{.ScoreClass}}">{{printf "%.1f" .Score}}%</td>
      <td>{{.Weight}}</td>
      <td>{{.FunctionsProgress}}</td>
      <td>{{.SLOCProgress}}</td>
      <td class="fix">{{.Fix}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}

  {{if .SkipWarnings}}
  <h2>Skipped Files</h2>
  <div class="warnings">{{range .SkipWarnings}}{{.}}<br>{{end}}</div>
  {{end}}

  <footer>Generated by {{.Generator}}</footer>
</div>
</body>
</html>`
