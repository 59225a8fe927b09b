// Package fs implements report persistence on the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/crystalscraper/crystal"
)

// Ensure Writer implements crystal.ReportWriter at compile time.
var _ crystal.ReportWriter = (*Writer)(nil)

// Writer saves reports as plain-text files under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir. The directory is created on
// the first write, not up front.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteReport saves content under the base directory and returns the full
// path of the written file.
func (w *Writer) WriteReport(ctx context.Context, filename, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", crystal.Errorf(crystal.EINTERNAL, "creating output directory: %v", err)
	}

	path := filepath.Join(w.baseDir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", crystal.Errorf(crystal.EINTERNAL, "writing report: %v", err)
	}

	return path, nil
}
