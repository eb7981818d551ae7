package gallery

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gaurav-prasanna/gallerygen/core"
	"github.com/gaurav-prasanna/gallerygen/core/config"
)

// Discover returns one file item per fragment matching d.Glob in fsys,
// in sorted path order. The item name is the file stem with
// d.TrimPrefix and d.TrimSuffix removed.
// Example: glyph-circle.html with TrimPrefix "glyph-" → circle
func Discover(fsys fs.FS, d config.Discover) ([]core.Item, error) {
	if d.Glob == "" {
		return nil, nil
	}

	matches, err := doublestar.Glob(fsys, filepath.ToSlash(d.Glob), doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", d.Glob, err)
	}
	sort.Strings(matches)

	items := make([]core.Item, 0, len(matches))
	for _, m := range matches {
		items = append(items, core.Item{
			Name:    stem(m, d.TrimPrefix, d.TrimSuffix),
			Source:  core.SourceFile,
			Path:    filepath.FromSlash(m),
			Select:  d.Select,
			Convert: d.Convert,
		})
	}
	return items, nil
}

func stem(p, prefix, suffix string) string {
	base := path.Base(p)
	name := strings.TrimSuffix(base, path.Ext(base))
	name = strings.TrimPrefix(name, prefix)
	return strings.TrimSuffix(name, suffix)
}
