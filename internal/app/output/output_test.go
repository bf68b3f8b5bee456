package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MOYARU/krs/internal/report"
	"github.com/MOYARU/krs/internal/version"
)

func chtmp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func sampleReport() *report.Report {
	return &report.Report{
		Generator: version.Generator(),
		Target:    "./my-kernel",
		Rubric:    "canonical (built-in)",
		StartTime: time.Now(),
		EndTime:   time.Now(),
		Kernel: []report.ComponentResult{{
			Name:     "scheduling",
			Category: "kernel",
			Weight:   15,
			Scores:   report.Scores{Evidence: 100, Functions: 5, SLOC: 5, Overall: 43},
		}},
		OS: []report.ComponentResult{{
			Name:     "filesystem",
			Category: "os",
			Weight:   10,
		}},
		Summary: report.Summary{
			KernelScore:    43,
			OSScore:        0,
			OverallScore:   21.5,
			Classification: report.ClassificationKernelPrototype,
			FilesScanned:   1,
		},
	}
}

func TestSaveJSONReport(t *testing.T) {
	chtmp(t)

	name, err := SaveJSONReport(sampleReport())
	if err != nil {
		t.Fatalf("SaveJSONReport() error: %v", err)
	}
	if !strings.HasPrefix(name, "krs_report_my-kernel_") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected report name: %s", name)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	var decoded report.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Summary.Classification != report.ClassificationKernelPrototype {
		t.Fatalf("unexpected classification: %s", decoded.Summary.Classification)
	}
	if decoded.Summary.OverallScore != 21.5 {
		t.Fatalf("unexpected overall score: %v", decoded.Summary.OverallScore)
	}
	if decoded.Generator != version.Generator() {
		t.Fatalf("unexpected generator: %s", decoded.Generator)
	}
}

func TestSaveHTMLReport(t *testing.T) {
	chtmp(t)

	r := sampleReport()
	gaps := report.GapAnalysis(r, 70)
	name, err := SaveHTMLReport(r, gaps)
	if err != nil {
		t.Fatalf("SaveHTMLReport() error: %v", err)
	}
	if !strings.HasSuffix(name, ".html") {
		t.Fatalf("unexpected report name: %s", name)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	html := string(data)
	for _, want := range []string{"kernel-prototype", "scheduling", "filesystem", version.Generator()} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in HTML report", want)
		}
	}
}

func TestReportFilenameSanitization(t *testing.T) {
	cases := []struct {
		target string
		want   string
	}{
		{"./my-kernel", "my-kernel"},
		{"/abs/path to/tree", "abs_path_to_tree"},
		{"C:\\src\\os", "C__src_os"},
		{".", "source"},
		{"", "source"},
	}
	for _, tc := range cases {
		name := reportFilename(tc.target, "json")
		if !strings.HasPrefix(name, "krs_report_"+tc.want+"_") {
			t.Fatalf("target %q: got %s, want stem %s", tc.target, name, tc.want)
		}
		if filepath.Base(name) != name {
			t.Fatalf("report name must not contain separators: %s", name)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("process_thread_management"); got != "process thread management" {
		t.Fatalf("unexpected display name: %s", got)
	}
}
