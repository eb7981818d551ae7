// Package render provides template substitution and output renderers for gallerygen.
// This file implements the Markdown renderer, which is a simple passthrough.
package render

import (
	"github.com/gaurav-prasanna/gallerygen/core"
)

// MarkdownRenderer writes the rendered document as-is. It's the default
// renderer since the gallery template is already Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(doc core.Document) ([]byte, error) {
	return []byte(doc.Markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ForFormat returns the renderer registered for the given format name.
func ForFormat(format string) (core.Renderer, bool) {
	switch format {
	case "", "markdown", "md":
		return NewMarkdownRenderer(), true
	case "json":
		return NewJSONRenderer(), true
	case "pdf":
		return NewPDFRenderer(), true
	default:
		return nil, false
	}
}
