// Package config loads the gallery build configuration.
// With no config file the built-in reference configuration reproduces the
// bokeh glyph gallery build: 18 generated entries keyed bokeh_glyphs_<name>.
package config

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/gallerygen/core"
	"github.com/gaurav-prasanna/gallerygen/core/render"
)

// Discover turns every file matched by Glob into a file-sourced item.
type Discover struct {
	Glob       string `mapstructure:"glob" yaml:"glob,omitempty"`
	TrimPrefix string `mapstructure:"trim_prefix" yaml:"trim_prefix,omitempty"`
	TrimSuffix string `mapstructure:"trim_suffix" yaml:"trim_suffix,omitempty"`
	Select     string `mapstructure:"select" yaml:"select,omitempty"`
	Convert    string `mapstructure:"convert" yaml:"convert,omitempty"`
}

// Config holds everything a build needs. Relative paths resolve against BaseDir.
type Config struct {
	BaseDir   string            `mapstructure:"base_dir" yaml:"base_dir,omitempty"`
	Template  string            `mapstructure:"template" yaml:"template"`
	Output    string            `mapstructure:"output" yaml:"output"`
	Format    string            `mapstructure:"format" yaml:"format"`
	Title     string            `mapstructure:"title" yaml:"title,omitempty"`
	Marker    string            `mapstructure:"marker" yaml:"marker"`
	KeyPrefix string            `mapstructure:"key_prefix" yaml:"key_prefix"`
	Snippet   string            `mapstructure:"snippet" yaml:"snippet"`
	Params    map[string]string `mapstructure:"params" yaml:"params,omitempty"`
	Items     []core.Item       `mapstructure:"items" yaml:"items"`
	Discover  Discover          `mapstructure:"discover" yaml:"discover,omitempty"`

	// File is the config file this was loaded from, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// DefaultSnippet is the generated entry for one glyph: an anchor, a heading
// linking the interactive figure and its code, and the static image.
const DefaultSnippet = `
<a name="{anchor_prefix}-{name}"></a>
#### {label} ([Interactive]({html_base}{name})) [(code)]({code_base}{name}/{name})
![{label}]({image_base}{name}.png)
`

// GlyphNames is the reference item list.
var GlyphNames = []string{
	"annular_wedge", "annulus", "arc", "asterisk", "circle",
	"circle_cross", "circle_x", "cross", "diamond", "diamond_cross", "ellipse",
	"hbar", "image", "image_rgba", "image_url", "square", "triangle", "vbar",
}

const (
	siteBase  = "http://alanpryorjr.com/visualizations/"
	imageBase = "../visualizations/"
)

// DefaultParams are the snippet variables of the reference configuration.
func DefaultParams() map[string]string {
	return map[string]string{
		"anchor_prefix": "bokeh-glyphs",
		"code_base":     siteBase + "bokeh/glyphs/",
		"html_base":     siteBase + "bokeh/figures/",
		"image_base":    imageBase + "bokeh/figures/",
	}
}

// Default returns the reference configuration.
func Default() *Config {
	items := make([]core.Item, 0, len(GlyphNames))
	for _, name := range GlyphNames {
		items = append(items, core.Item{Name: name, Source: core.SourceGenerated})
	}
	return &Config{
		BaseDir:   ".",
		Template:  "gallery-template.md",
		Output:    "gallery.md",
		Format:    "markdown",
		Marker:    render.DefaultMarker,
		KeyPrefix: "bokeh_glyphs",
		Snippet:   DefaultSnippet,
		Params:    DefaultParams(),
		Items:     items,
	}
}

// Validate normalizes item sources and rejects unusable settings.
func (c *Config) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("template path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if _, ok := render.ForFormat(c.Format); !ok {
		return fmt.Errorf("unknown format %q (want markdown, json or pdf)", c.Format)
	}
	if err := validateConvert(c.Discover.Convert); err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	if err := validateSnippet(c.Snippet); err != nil {
		return fmt.Errorf("snippet: %w", err)
	}
	for k := range c.Params {
		if err := validateParamName(k); err != nil {
			return fmt.Errorf("params: %w", err)
		}
	}

	for i := range c.Items {
		it := &c.Items[i]
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			return fmt.Errorf("items[%d]: name is required", i)
		}
		if it.Source == "" {
			switch {
			case it.URL != "":
				it.Source = core.SourceURL
			case it.Path != "":
				it.Source = core.SourceFile
			default:
				it.Source = core.SourceGenerated
			}
		}
		switch it.Source {
		case core.SourceGenerated:
		case core.SourceFile:
			if it.Path == "" {
				return fmt.Errorf("items[%d] %s: file source needs a path", i, it.Name)
			}
		case core.SourceURL:
			if it.URL == "" {
				return fmt.Errorf("items[%d] %s: url source needs a url", i, it.Name)
			}
		default:
			return fmt.Errorf("items[%d] %s: unknown source %q", i, it.Name, it.Source)
		}
		if err := validateConvert(it.Convert); err != nil {
			return fmt.Errorf("items[%d] %s: %w", i, it.Name, err)
		}
	}
	return nil
}

func validateConvert(convert string) error {
	switch convert {
	case "", "markdown":
		return nil
	default:
		return fmt.Errorf("unknown convert %q (want markdown)", convert)
	}
}

// validateSnippet rejects placeholders no params key can ever match. The
// config file reader lower-cases map keys and treats '.' as nesting.
func validateSnippet(snippet string) error {
	keys, err := render.Placeholders(snippet)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := validateParamName(key); err != nil {
			return fmt.Errorf("placeholder {%s}: %w", key, err)
		}
	}
	return nil
}

func validateParamName(name string) error {
	if strings.Contains(name, ".") {
		return fmt.Errorf("%q contains '.', which config files read as a nested key", name)
	}
	if lower := strings.ToLower(name); lower != name {
		return fmt.Errorf("%q has upper-case letters but config file keys are lower-cased; use %q", name, lower)
	}
	return nil
}
