package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
}

func TestScanFiltersByExtension(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "kernel/sched.c", []byte("int x;\n"))
	writeFile(t, tmp, "kernel/sched.h", []byte("extern int x;\n"))
	writeFile(t, tmp, "boot/start.S", []byte("_start:\n"))
	writeFile(t, tmp, "README.md", []byte("docs\n"))
	writeFile(t, tmp, "Makefile", []byte("all:\n"))

	sr, err := Scan(context.Background(), tmp, nil)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	want := []string{"boot/start.S", "kernel/sched.c", "kernel/sched.h"}
	if len(sr.Files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(sr.Files), sr.Files)
	}
	for _, rel := range want {
		if _, ok := sr.Files[rel]; !ok {
			t.Fatalf("expected %s in scan result", rel)
		}
	}
	if sr.Lines["kernel/sched.c"] != 2 {
		t.Fatalf("unexpected line count: %d", sr.Lines["kernel/sched.c"])
	}
}

func TestScanSkipsBinaryFiles(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "good.c", []byte("int x;\n"))
	writeFile(t, tmp, "bad.c", []byte{0x7f, 0x45, 0x4c, 0x46, 0x00, 0x01, 0x02})

	sr, err := Scan(context.Background(), tmp, nil)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(sr.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(sr.Files))
	}
	if len(sr.Skipped) != 1 || !strings.Contains(sr.Skipped[0], "bad.c") {
		t.Fatalf("expected skip warning for bad.c, got %v", sr.Skipped)
	}
}

func TestScanEmptyTreeIsNotAnError(t *testing.T) {
	tmp := t.TempDir()

	sr, err := Scan(context.Background(), tmp, nil)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if !sr.Empty() {
		t.Fatalf("expected empty scan result")
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestScanRootIsFile(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "f.c", []byte("int x;\n"))
	if _, err := Scan(context.Background(), filepath.Join(tmp, "f.c"), nil); err == nil {
		t.Fatalf("expected error for non-directory root")
	}
}

func TestScanCustomAllowlist(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "mod.rs", []byte("fn main() {}\n"))
	writeFile(t, tmp, "mod.c", []byte("int x;\n"))

	sr, err := Scan(context.Background(), tmp, []string{".rs"})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(sr.Files) != 1 {
		t.Fatalf("expected only mod.rs, got %v", sr.Files)
	}
	// "rs" without the leading dot normalizes too
	sr, err = Scan(context.Background(), tmp, []string{"rs"})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if _, ok := sr.Files["mod.rs"]; !ok {
		t.Fatalf("expected mod.rs, got %v", sr.Files)
	}
}

func TestScanHonorsCancellation(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "a.c", []byte("int x;\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, tmp, nil); err == nil {
		t.Fatalf("expected context error")
	}
}
