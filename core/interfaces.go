// Package core defines the shared types and stage interfaces for gallerygen.
// Each stage of the build is a small, testable interface.
package core

import "context"

// Source says where an item's replacement text comes from.
type Source string

const (
	SourceGenerated Source = "generated" // snippet template rendered per item
	SourceFile      Source = "file"      // fragment file read verbatim
	SourceURL       Source = "url"       // fragment fetched over HTTP
)

// Item is one entry of the gallery: an item name plus how to produce its text.
type Item struct {
	Name   string `mapstructure:"name" yaml:"name" json:"name"`
	Key    string `mapstructure:"key" yaml:"key,omitempty" json:"key,omitempty"` // overrides the derived key
	Source Source `mapstructure:"source" yaml:"source,omitempty" json:"source,omitempty"`
	Path   string `mapstructure:"path" yaml:"path,omitempty" json:"path,omitempty"`
	URL    string `mapstructure:"url" yaml:"url,omitempty" json:"url,omitempty"`

	// Select keeps only the outer HTML of the first element matching this CSS selector.
	Select string `mapstructure:"select" yaml:"select,omitempty" json:"select,omitempty"`
	// Convert is "" (verbatim) or "markdown".
	Convert string `mapstructure:"convert" yaml:"convert,omitempty" json:"convert,omitempty"`
}

// Ref returns the fragment reference (path or URL) for non-generated items.
func (it Item) Ref() string {
	if it.Source == SourceURL {
		return it.URL
	}
	return it.Path
}

// Mapping maps placeholder keys to replacement text.
type Mapping map[string]string

// Entry describes one mapping key for listings and the JSON outline.
type Entry struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Source Source `json:"source"`
	Ref    string `json:"ref,omitempty"`
}

// Document is the rendered gallery handed to an output renderer.
type Document struct {
	Markdown string
	Title    string
	Template string
	Entries  []Entry
}

// Loader retrieves the raw text of a fragment (file path or URL).
type Loader interface {
	Load(ctx context.Context, ref string) (string, error)
}

// Extractor narrows an HTML fragment to the part matching a selector.
type Extractor interface {
	Extract(html, selector string) (string, error)
}

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts the rendered Markdown document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
