// Package cmd — build command.
// This is the main command that orchestrates the gallery build:
// discover → map → read template → substitute → strip marker → render → write.
//
// Every read happens before the single write, and the write is atomic, so a
// failed build leaves the previous output untouched.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gaurav-prasanna/gallerygen/core"
	"github.com/gaurav-prasanna/gallerygen/core/config"
	"github.com/gaurav-prasanna/gallerygen/core/extract"
	"github.com/gaurav-prasanna/gallerygen/core/fetch"
	"github.com/gaurav-prasanna/gallerygen/core/gallery"
	"github.com/gaurav-prasanna/gallerygen/core/normalize"
	"github.com/gaurav-prasanna/gallerygen/core/output"
	"github.com/gaurav-prasanna/gallerygen/core/render"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the gallery template and write the output file",
	Long: `Build fills every {key} placeholder of the template and writes the output.

Examples:
  gallerygen build
  gallerygen build --config site/gallery.yaml
  gallerygen build --format pdf --output gallery.pdf`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), flagVerbose)

	path, err := buildGallery(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// prepared is a fully rendered gallery that has not been written yet.
type prepared struct {
	Doc          core.Document
	Mapping      core.Mapping
	Placeholders []string
}

// Unused returns mapping keys the template never references, sorted.
func (p *prepared) Unused() []string {
	used := make(map[string]bool, len(p.Placeholders))
	for _, k := range p.Placeholders {
		used[k] = true
	}
	var unused []string
	for k := range p.Mapping {
		if !used[k] {
			unused = append(unused, k)
		}
	}
	sort.Strings(unused)
	return unused
}

// buildGallery renders the gallery described by cfg and writes it.
func buildGallery(ctx context.Context, cfg *config.Config, logger *slog.Logger) (string, error) {
	renderer, ok := render.ForFormat(cfg.Format)
	if !ok {
		return "", fmt.Errorf("unknown format %q", cfg.Format)
	}

	p, err := prepareGallery(ctx, cfg, logger)
	if err != nil {
		return "", err
	}
	if unused := p.Unused(); len(unused) > 0 {
		logger.Debug("mapping keys not referenced by template", "count", len(unused), "keys", unused)
	}

	data, err := renderer.Render(p.Doc)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", cfg.Format, err)
	}

	writer, err := output.New(cfg.BaseDir)
	if err != nil {
		return "", fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(outputPath(cfg.Output, renderer), data)
	if err != nil {
		return "", err
	}
	logger.Debug("wrote output", "path", path, "bytes", len(data))
	return path, nil
}

// prepareGallery runs every step up to, but excluding, the write.
func prepareGallery(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*prepared, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Collect items
	items, err := collectItems(cfg)
	if err != nil {
		return nil, err
	}
	entries, err := gallery.Entries(cfg.KeyPrefix, items)
	if err != nil {
		return nil, err
	}

	// 2. Build the replacement mapping
	builder := &gallery.Builder{
		Prefix:     cfg.KeyPrefix,
		Snippet:    cfg.Snippet,
		Params:     cfg.Params,
		Loader:     fetch.New(cfg.BaseDir),
		Extractor:  extract.New(),
		Normalizer: normalize.New(),
		Logger:     logger,
	}
	mapping, err := builder.BuildReplacementMap(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("building mapping: %w", err)
	}
	logger.Debug("built mapping", "keys", len(mapping))

	// 3. Load the template
	templatePath := resolve(cfg.BaseDir, cfg.Template)
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	// 4. Substitute, then strip the marker
	tmpl := string(raw)
	placeholders, err := render.Placeholders(tmpl)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", templatePath, err)
	}
	markdown, err := render.Render(tmpl, mapping)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", templatePath, err)
	}
	markdown = render.StripMarker(markdown, cfg.Marker)

	return &prepared{
		Doc: core.Document{
			Markdown: markdown,
			Title:    cfg.Title,
			Template: cfg.Template,
			Entries:  entries,
		},
		Mapping:      mapping,
		Placeholders: placeholders,
	}, nil
}

// collectItems returns the configured items followed by discovered fragments.
// An explicit item owns its key: a discovered fragment deriving the same key
// is skipped.
func collectItems(cfg *config.Config) ([]core.Item, error) {
	items := append([]core.Item(nil), cfg.Items...)
	dir := cfg.BaseDir
	if dir == "" {
		dir = "."
	}
	found, err := gallery.Discover(os.DirFS(dir), cfg.Discover)
	if err != nil {
		return nil, fmt.Errorf("discovering fragments: %w", err)
	}

	claimed := make(map[string]bool, len(items))
	for _, it := range items {
		claimed[gallery.ItemKey(cfg.KeyPrefix, it)] = true
	}
	for _, it := range found {
		if claimed[gallery.ItemKey(cfg.KeyPrefix, it)] {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// outputPath swaps a Markdown extension for the renderer's own.
func outputPath(path string, renderer core.Renderer) string {
	if filepath.Ext(path) == ".md" {
		return output.WithExtension(path, renderer.Extension())
	}
	return path
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
