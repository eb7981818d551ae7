package gallery

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/gallerygen/core"
	"github.com/gaurav-prasanna/gallerygen/core/config"
	"github.com/gaurav-prasanna/gallerygen/core/extract"
	"github.com/gaurav-prasanna/gallerygen/core/fetch"
)

type mapLoader map[string]string

func (m mapLoader) Load(_ context.Context, ref string) (string, error) {
	text, ok := m[ref]
	if !ok {
		return "", fs.ErrNotExist
	}
	return text, nil
}

type upperNormalizer struct{}

func (upperNormalizer) Normalize(html string) (string, error) {
	return strings.ToUpper(html), nil
}

func referenceBuilder() *Builder {
	cfg := config.Default()
	return &Builder{
		Prefix:  cfg.KeyPrefix,
		Snippet: cfg.Snippet,
		Params:  cfg.Params,
	}
}

func TestBuildReplacementMapGenerated(t *testing.T) {
	cfg := config.Default()
	mapping, err := referenceBuilder().BuildReplacementMap(context.Background(), cfg.Items)
	if err != nil {
		t.Fatalf("BuildReplacementMap() error = %v", err)
	}
	if len(mapping) != len(config.GlyphNames) {
		t.Fatalf("got %d keys, want %d", len(mapping), len(config.GlyphNames))
	}

	want := `
<a name="bokeh-glyphs-image_rgba"></a>
#### Image Rgba ([Interactive](http://alanpryorjr.com/visualizations/bokeh/figures/image_rgba)) [(code)](http://alanpryorjr.com/visualizations/bokeh/glyphs/image_rgba/image_rgba)
![Image Rgba](../visualizations/bokeh/figures/image_rgba.png)
`
	if got := mapping["bokeh_glyphs_image_rgba"]; got != want {
		t.Errorf("image_rgba snippet =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildReplacementMapFragments(t *testing.T) {
	b := &Builder{
		Prefix: "fig",
		Loader: mapLoader{
			"figures/glyph-arc.html": "<!DOCTYPE html><html><body><div id=\"plot\">arc</div></body></html>",
			"http://x/circle.html":   "<b>circle</b>",
		},
		Extractor:  extract.New(),
		Normalizer: upperNormalizer{},
	}
	items := []core.Item{
		{Name: "arc", Source: core.SourceFile, Path: "figures/glyph-arc.html", Select: "#plot"},
		{Name: "circle", Source: core.SourceURL, URL: "http://x/circle.html", Convert: "markdown"},
		{Name: "raw", Key: "custom_key", Source: core.SourceFile, Path: "figures/glyph-arc.html"},
	}

	mapping, err := b.BuildReplacementMap(context.Background(), items)
	if err != nil {
		t.Fatalf("BuildReplacementMap() error = %v", err)
	}

	if got := mapping["fig_arc"]; got != `<div id="plot">arc</div>` {
		t.Errorf("fig_arc = %q", got)
	}
	if got := mapping["fig_circle"]; got != "<B>CIRCLE</B>" {
		t.Errorf("fig_circle = %q", got)
	}
	if got := mapping["custom_key"]; !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("custom_key should be verbatim, got %q", got)
	}
}

func TestBuildReplacementMapMissingFragment(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "present.html"), []byte("<p>ok</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	b := &Builder{Prefix: "p", Loader: fetch.NewFileLoader(dir)}
	items := []core.Item{
		{Name: "present", Source: core.SourceFile, Path: "present.html"},
		{Name: "gone", Source: core.SourceFile, Path: "gone.html"},
	}

	mapping, err := b.BuildReplacementMap(context.Background(), items)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("BuildReplacementMap() error = %v, want fs.ErrNotExist", err)
	}
	if mapping != nil {
		t.Errorf("expected no partial mapping, got %v", mapping)
	}
	if !strings.Contains(err.Error(), "item gone") {
		t.Errorf("error %q does not name the item", err)
	}
}

func TestBuildReplacementMapDuplicateKey(t *testing.T) {
	items := []core.Item{
		{Name: "arc"},
		{Name: "other", Key: "bokeh_glyphs_arc"},
	}
	_, err := referenceBuilder().BuildReplacementMap(context.Background(), items)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("error = %v, want ErrDuplicateKey", err)
	}
}

func TestBuildReplacementMapSnippetError(t *testing.T) {
	b := &Builder{Prefix: "k", Snippet: "{name} {undefined}"}
	_, err := b.BuildReplacementMap(context.Background(), []core.Item{{Name: "arc"}})
	if err == nil || !strings.Contains(err.Error(), "snippet") {
		t.Fatalf("error = %v, want snippet error", err)
	}
}

func TestBuildReplacementMapCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := referenceBuilder().BuildReplacementMap(ctx, config.Default().Items)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestEntries(t *testing.T) {
	entries, err := Entries("bokeh_glyphs", []core.Item{
		{Name: "circle_cross", Source: core.SourceGenerated},
		{Name: "arc", Source: core.SourceFile, Path: "arc.html"},
	})
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	want := []core.Entry{
		{Key: "bokeh_glyphs_circle_cross", Label: "Circle Cross", Source: core.SourceGenerated},
		{Key: "bokeh_glyphs_arc", Label: "Arc", Source: core.SourceFile, Ref: "arc.html"},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}
