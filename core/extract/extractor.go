// Package extract implements the Extractor interface.
// It narrows an HTML fragment (often a full standalone page, such as an
// exported plot) to the element a gallery entry should inline.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed when a fragment is reduced to its <body>.
var noiseSelectors = []string{"title", "meta", "noscript"}

// HTMLExtractor selects part of an HTML fragment with a CSS selector.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the outer HTML of the first element matching selector.
// The special selector "body" returns the body's inner HTML so a standalone
// page inlines as a fragment. An empty selector returns html unchanged.
func (e *HTMLExtractor) Extract(html, selector string) (string, error) {
	if selector == "" {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	if selector == "body" {
		body := doc.Find("body").First()
		for _, sel := range noiseSelectors {
			body.Find(sel).Remove()
		}
		inner, err := body.Html()
		if err != nil {
			return "", fmt.Errorf("serializing body: %w", err)
		}
		return strings.TrimSpace(inner), nil
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("selector %q matched nothing", selector)
	}

	result, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return "", fmt.Errorf("serializing selection: %w", err)
	}
	return result, nil
}
