package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/notebook/internal/catalog"
)

// Fetcher retrieves the raw markdown of one catalog entry.
type Fetcher interface {
	Fetch(ctx context.Context, entry catalog.Entry) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, entry catalog.Entry) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, entry catalog.Entry) ([]byte, error) {
	return f(ctx, entry)
}

// DefaultMaxBody caps the size of a fetched note.
const DefaultMaxBody = 8 << 20

// HTTPFetcher resolves entry.Path against BaseURL. A root-relative path is
// resolved relative to BaseURL's directory, so a reader mounted below a
// sub-path keeps working.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
	MaxBody int64
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, entry catalog.Entry) ([]byte, error) {
	target, err := f.resolve(entry.Path)
	if err != nil {
		return nil, Transport(entry.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, Transport(entry.ID, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, Transport(entry.ID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NotFound(entry.ID, fmt.Errorf("GET %s: %s", target, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, Transport(entry.ID, fmt.Errorf("GET %s: %s", target, resp.Status))
	}

	limit := f.MaxBody
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, Transport(entry.ID, fmt.Errorf("reading body: %w", err))
	}
	if int64(len(body)) > limit {
		return nil, Transport(entry.ID, fmt.Errorf("body exceeds %d bytes", limit))
	}
	if !utf8.Valid(body) {
		return nil, Transport(entry.ID, errors.New("body is not valid UTF-8"))
	}
	return body, nil
}

func (f *HTTPFetcher) resolve(p string) (string, error) {
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if strings.HasPrefix(p, "/") {
		p = "." + p
	}
	ref, err := url.Parse(p)
	if err != nil {
		return "", fmt.Errorf("parsing note path %q: %w", p, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// DirFetcher reads notes by file name from a directory.
type DirFetcher struct {
	Root string
}

// Fetch implements Fetcher.
func (f DirFetcher) Fetch(ctx context.Context, entry catalog.Entry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, Transport(entry.ID, err)
	}
	name := path.Clean("/" + filepath.ToSlash(entry.FileName))
	data, err := os.ReadFile(filepath.Join(f.Root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NotFound(entry.ID, err)
		}
		return nil, Transport(entry.ID, err)
	}
	return data, nil
}

// MapFetcher serves notes from memory, keyed by entry id.
type MapFetcher map[string]string

// Fetch implements Fetcher.
func (m MapFetcher) Fetch(ctx context.Context, entry catalog.Entry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, Transport(entry.ID, err)
	}
	text, ok := m[entry.ID]
	if !ok {
		return nil, NotFound(entry.ID, nil)
	}
	return []byte(text), nil
}

// CatalogFile is the catalog's name relative to the reader's base URL.
const CatalogFile = catalog.DefaultFileName

// FetchCatalog downloads and decodes the catalog file next to BaseURL.
// Any failure is reported as catalog.ErrSourceUnavailable.
func (f *HTTPFetcher) FetchCatalog(ctx context.Context) (catalog.Catalog, error) {
	data, err := f.Fetch(ctx, catalog.Entry{ID: CatalogFile, Path: CatalogFile})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrSourceUnavailable, err)
	}
	c, err := catalog.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrSourceUnavailable, err)
	}
	return c, nil
}
