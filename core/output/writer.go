// Package output handles output path resolution and writing for gallerygen.
// Files are replaced atomically: the previous content survives any failed run.
package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Writer writes rendered output to disk.
type Writer struct {
	BaseDir string
}

// New creates a Writer resolving relative paths against baseDir.
// If baseDir is empty, it defaults to the current working directory.
func New(baseDir string) (*Writer, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		baseDir = wd
	}
	return &Writer{BaseDir: baseDir}, nil
}

// Resolve returns the absolute-or-base-relative location of path.
func (w *Writer) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.BaseDir, path)
}

// Write replaces the file at path with data and returns the resolved path.
func (w *Writer) Write(path string, data []byte) (string, error) {
	fullPath := w.Resolve(path)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := atomic.WriteFile(fullPath, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// WithExtension swaps the extension of path for ext.
// Example: gallery.md + ".pdf" → gallery.pdf
func WithExtension(path, ext string) string {
	if ext == "" {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
