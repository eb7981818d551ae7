package gallery

import (
	"testing"

	"github.com/gaurav-prasanna/gallerygen/core/config"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"arc", "Arc"},
		{"annular_wedge", "Annular Wedge"},
		{"image_rgba", "Image Rgba"},
		{"circle_x", "Circle X"},
		{"HBAR", "Hbar"},
		{"double__sep", "Double  Sep"},
		{"", ""},
		{"élan_vital", "Élan Vital"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.name); got != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix, name, want string
	}{
		{"bokeh_glyphs", "arc", "bokeh_glyphs_arc"},
		{"bokeh_glyphs", "image_url", "bokeh_glyphs_image_url"},
		{"", "arc", "arc"},
	}
	for _, tt := range tests {
		if got := Key(tt.prefix, tt.name); got != tt.want {
			t.Errorf("Key(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestReferenceKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range config.GlyphNames {
		key := Key("bokeh_glyphs", name)
		if seen[key] {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = true
	}
	if len(seen) != 18 {
		t.Errorf("got %d keys, want 18", len(seen))
	}
}
