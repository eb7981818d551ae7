// Package normalize implements the Normalizer interface.
// It converts HTML fragments into Markdown for galleries that inline
// fragment text rather than raw HTML.
package normalize

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
