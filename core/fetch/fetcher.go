// Package fetch implements the fragment Loader interface.
// Fragments are read from local files or fetched over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "gallerygen/1.0 (https://github.com/gaurav-prasanna/gallerygen)"
)

// FileLoader reads fragment files relative to a base directory.
type FileLoader struct {
	BaseDir string
}

// NewFileLoader creates a FileLoader rooted at baseDir.
func NewFileLoader(baseDir string) *FileLoader {
	return &FileLoader{BaseDir: baseDir}
}

// Load reads the whole fragment file. A missing file yields an error
// wrapping fs.ErrNotExist.
func (l *FileLoader) Load(_ context.Context, ref string) (string, error) {
	path := ref
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading fragment %s: %w", path, err)
	}
	return string(data), nil
}

// HTTPLoader fetches fragments via HTTP.
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader creates an HTTPLoader with a sensible timeout.
func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Load retrieves the body of the given URL.
func (l *HTTPLoader) Load(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// MultiLoader sends http(s) references to HTTP and everything else to Files.
type MultiLoader struct {
	Files *FileLoader
	HTTP  *HTTPLoader
}

// New creates a MultiLoader reading local fragments relative to baseDir.
func New(baseDir string) *MultiLoader {
	return &MultiLoader{
		Files: NewFileLoader(baseDir),
		HTTP:  NewHTTPLoader(),
	}
}

// Load dispatches on the reference scheme.
func (l *MultiLoader) Load(ctx context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.HTTP.Load(ctx, ref)
	}
	return l.Files.Load(ctx, ref)
}
