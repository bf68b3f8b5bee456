package engine

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// DefaultExtensions is the default allowlist of source, header, and assembly
// extensions. Matching is case-insensitive so ".S" assembly files count.
var DefaultExtensions = []string{".c", ".h", ".cpp", ".cc", ".hpp", ".s", ".asm"}

// ScanResult maps repository-relative file paths to their text content.
// Built once per run, read-only afterward; workers share it without locking.
type ScanResult struct {
	Files map[string]string
	Lines map[string]int
	// Skipped holds one warning per file that could not be read or decoded.
	// Skips are never fatal: one bad file must not abort the run.
	Skipped []string
}

// Empty reports whether the scan found no matching files. Callers score
// against zero evidence in that case; it is not an error.
func (sr *ScanResult) Empty() bool {
	return len(sr.Files) == 0
}

// Scan walks root recursively, reading every regular file whose extension is
// on the allowlist. File reads run on a bounded worker group; the caller's
// context cancels the walk and any in-flight reads.
func Scan(ctx context.Context, root string, extensions []string) (*ScanResult, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	allow := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allow[ext] = true
	}

	sr := &ScanResult{
		Files: make(map[string]string),
		Lines: make(map[string]int),
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			sr.Skipped = append(sr.Skipped, fmt.Sprintf("%s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if allow[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	var mu sync.Mutex

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)

			data, err := os.ReadFile(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sr.Skipped = append(sr.Skipped, fmt.Sprintf("%s: %v", rel, err))
				return nil
			}
			if !isText(data) {
				sr.Skipped = append(sr.Skipped, fmt.Sprintf("%s: not valid text, skipped", rel))
				return nil
			}
			content := string(data)
			sr.Files[rel] = content
			sr.Lines[rel] = strings.Count(content, "\n") + 1
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(sr.Skipped)
	return sr, nil
}

// isText is a cheap decode check: no NUL bytes and valid UTF-8. Matches the
// scanner's best-effort stance; anything that fails is skipped with a
// warning, not an error.
func isText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
