// Package gallery builds the replacement mapping for a gallery template:
// one placeholder key per item, filled with a generated snippet or the
// contents of a fragment.
package gallery

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator splits an item name into the words of its label.
const Separator = "_"

// Label turns an item name into a human-readable label by splitting it on
// Separator and capitalizing each part.
// Example: image_rgba → Image Rgba
func Label(name string) string {
	parts := strings.Split(name, Separator)
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Key derives the placeholder key for an item name.
// Example: ("bokeh_glyphs", "arc") → bokeh_glyphs_arc
func Key(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + Separator + name
}
