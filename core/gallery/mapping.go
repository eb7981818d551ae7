package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/gallerygen/core"
	"github.com/gaurav-prasanna/gallerygen/core/render"
)

// ErrDuplicateKey is returned when two items derive the same placeholder key.
var ErrDuplicateKey = errors.New("duplicate placeholder key")

// Builder constructs replacement mappings. It holds no state between builds.
type Builder struct {
	Prefix  string
	Snippet string
	Params  map[string]string

	Loader     core.Loader
	Extractor  core.Extractor
	Normalizer core.Normalizer
	Logger     *slog.Logger
}

// ItemKey returns the placeholder key for it, honoring an explicit override.
func ItemKey(prefix string, it core.Item) string {
	if it.Key != "" {
		return it.Key
	}
	return Key(prefix, it.Name)
}

// Entries lists the key, label and source of every item, rejecting
// duplicate keys.
func Entries(prefix string, items []core.Item) ([]core.Entry, error) {
	seen := make(map[string]string, len(items))
	entries := make([]core.Entry, 0, len(items))
	for _, it := range items {
		key := ItemKey(prefix, it)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s (items %s and %s)", ErrDuplicateKey, key, prev, it.Name)
		}
		seen[key] = it.Name
		entries = append(entries, core.Entry{
			Key:    key,
			Label:  Label(it.Name),
			Source: it.Source,
			Ref:    it.Ref(),
		})
	}
	return entries, nil
}

// BuildReplacementMap produces the mapping for items. The first failing
// item aborts the build and no mapping is returned.
func (b *Builder) BuildReplacementMap(ctx context.Context, items []core.Item) (core.Mapping, error) {
	if _, err := Entries(b.Prefix, items); err != nil {
		return nil, err
	}

	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mapping := make(core.Mapping, len(items))
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := ItemKey(b.Prefix, it)
		text, err := b.replacement(ctx, key, it)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.Name, err)
		}
		mapping[key] = text
		logger.Debug("mapped placeholder", "key", key, "source", it.Source, "bytes", len(text))
	}
	return mapping, nil
}

func (b *Builder) replacement(ctx context.Context, key string, it core.Item) (string, error) {
	if it.Source == core.SourceGenerated || it.Source == "" {
		return b.generate(key, it.Name)
	}

	if b.Loader == nil {
		return "", fmt.Errorf("no loader configured for %s source", it.Source)
	}
	text, err := b.Loader.Load(ctx, it.Ref())
	if err != nil {
		return "", err
	}

	if it.Select != "" {
		if b.Extractor == nil {
			return "", fmt.Errorf("no extractor configured for select %q", it.Select)
		}
		if text, err = b.Extractor.Extract(text, it.Select); err != nil {
			return "", fmt.Errorf("select: %w", err)
		}
	}

	if it.Convert == "markdown" {
		if b.Normalizer == nil {
			return "", fmt.Errorf("no normalizer configured for markdown conversion")
		}
		if text, err = b.Normalizer.Normalize(text); err != nil {
			return "", fmt.Errorf("convert: %w", err)
		}
	}
	return text, nil
}

// generate renders the snippet with the params plus name, label and key.
func (b *Builder) generate(key, name string) (string, error) {
	vars := make(core.Mapping, len(b.Params)+3)
	for k, v := range b.Params {
		vars[k] = v
	}
	vars["name"] = name
	vars["label"] = Label(name)
	vars["key"] = key

	text, err := render.Render(b.Snippet, vars)
	if err != nil {
		return "", fmt.Errorf("snippet: %w", err)
	}
	return text, nil
}
