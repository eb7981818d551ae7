package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "glyph-arc.html"), []byte("<div>arc</div>"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewFileLoader(dir)
	got, err := l.Load(context.Background(), "glyph-arc.html")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "<div>arc</div>" {
		t.Errorf("Load() = %q", got)
	}

	_, err = l.Load(context.Background(), "glyph-missing.html")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestHTTPLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.UserAgent(), "gallerygen/") {
			t.Errorf("User-Agent = %q", r.UserAgent())
		}
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<b>remote</b>"))
	}))
	defer srv.Close()

	l := NewHTTPLoader()
	got, err := l.Load(context.Background(), srv.URL+"/fragment.html")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "<b>remote</b>" {
		t.Errorf("Load() = %q", got)
	}

	if _, err := l.Load(context.Background(), srv.URL+"/missing"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Load(missing) error = %v, want status 404", err)
	}
}

func TestMultiLoaderDispatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("http"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "local.html"), []byte("file"), 0644); err != nil {
		t.Fatal(err)
	}

	l := New(dir)
	tests := []struct {
		ref, want string
	}{
		{srv.URL + "/x", "http"},
		{"local.html", "file"},
	}
	for _, tt := range tests {
		got, err := l.Load(context.Background(), tt.ref)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", tt.ref, err)
		}
		if got != tt.want {
			t.Errorf("Load(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
