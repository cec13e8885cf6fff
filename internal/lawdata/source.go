package lawdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Source retrieves reference assets by their absolute asset path (e.g. "/data/legal/x.json").
type Source interface {
	Fetch(ctx context.Context, assetPath string) (io.ReadCloser, error)
}

// StatusError is returned by HTTPSource for non-success responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// HTTPSource fetches assets from a static file server.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource returns a source rooted at baseURL. A nil client uses http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Fetch issues a GET for assetPath. The caller closes the returned body.
func (h *HTTPSource) Fetch(ctx context.Context, assetPath string) (io.ReadCloser, error) {
	u := h.baseURL + escapePath(assetPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// escapePath percent-encodes each segment; some asset names contain spaces.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

// DirSource reads assets from a local directory that contains the "data" tree.
type DirSource struct {
	root string
}

// NewDirSource returns a source rooted at root; "/data/legal/x.json" resolves to
// root/data/legal/x.json.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: filepath.Clean(root)}
}

// Root returns the directory the source reads from.
func (d *DirSource) Root() string { return d.root }

// DataDir returns the directory holding the bucket sub-directories.
func (d *DirSource) DataDir() string { return filepath.Join(d.root, basePath) }

// Fetch opens the file for assetPath. Paths cannot escape the root.
func (d *DirSource) Fetch(ctx context.Context, assetPath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean("/" + assetPath)
	f, err := os.Open(filepath.Join(d.root, filepath.FromSlash(clean)))
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	return f, nil
}

// NewSource picks an HTTPSource for http(s) locations and a DirSource otherwise.
func NewSource(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, client)
	}
	return NewDirSource(location)
}
