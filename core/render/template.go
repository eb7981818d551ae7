// Package render — template substitution.
// Replaces `{key}` placeholders in a single left-to-right pass. `{{` and `}}`
// are escapes for literal braces. Unknown keys fail the whole render; mapping
// entries the template never references are ignored.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/gallerygen/core"
)

// DefaultMarker is the legacy doctype tag stripped from rendered documents.
const DefaultMarker = "<!DOCTYPE html>"

// UnresolvedPlaceholderError reports the first placeholder with no mapping entry.
type UnresolvedPlaceholderError struct {
	Key    string
	Offset int // byte offset of the opening brace
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder {%s} at offset %d", e.Key, e.Offset)
}

// SyntaxError reports malformed brace syntax in a template.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Render substitutes every placeholder in tmpl with its value from mapping.
// Nothing is returned unless every placeholder resolves.
func Render(tmpl string, mapping core.Mapping) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	err := scan(tmpl, func(text string) {
		b.WriteString(text)
	}, func(key string, offset int) error {
		val, ok := mapping[key]
		if !ok {
			return &UnresolvedPlaceholderError{Key: key, Offset: offset}
		}
		b.WriteString(val)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Placeholders returns the keys referenced by tmpl in first-seen order.
func Placeholders(tmpl string) ([]string, error) {
	seen := make(map[string]bool)
	var keys []string
	err := scan(tmpl, func(string) {}, func(key string, _ int) error {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// StripMarker removes every occurrence of marker from doc.
func StripMarker(doc, marker string) string {
	if marker == "" {
		return doc
	}
	return strings.ReplaceAll(doc, marker, "")
}

// scan walks tmpl, calling text for literal runs and field for each placeholder.
func scan(tmpl string, text func(string), field func(key string, offset int) error) error {
	start := 0
	for i := 0; i < len(tmpl); i++ {
		switch tmpl[i] {
		case '{':
			text(tmpl[start:i])
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				text("{")
				i++
				start = i + 1
				continue
			}
			end := strings.IndexAny(tmpl[i+1:], "{}")
			if end == -1 || tmpl[i+1+end] != '}' {
				return &SyntaxError{Offset: i, Msg: "unmatched '{'"}
			}
			key := tmpl[i+1 : i+1+end]
			if key == "" {
				return &SyntaxError{Offset: i, Msg: "empty placeholder"}
			}
			if err := field(key, i); err != nil {
				return err
			}
			i += end + 1
			start = i + 1
		case '}':
			text(tmpl[start:i])
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				text("}")
				i++
				start = i + 1
				continue
			}
			return &SyntaxError{Offset: i, Msg: "single '}' encountered"}
		}
	}
	text(tmpl[start:])
	return nil
}
