package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// IndexFile is the name of the per-category manifest.
const IndexFile = "index.json"

// maxFileSize caps how much of a single response is read.
const maxFileSize = 8 << 20

// ErrNotFound is returned by fetchers when a file does not exist.
var ErrNotFound = errors.New("content: not found")

// StatusError is returned by HTTPFetcher for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("content: GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Fetcher reads one file of a category.
type Fetcher interface {
	Fetch(ctx context.Context, category, name string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, category, name string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, category, name string) ([]byte, error) {
	return f(ctx, category, name)
}

// HTTPFetcher fetches files from a static file server rooted at BaseURL,
// e.g. "https://example.com/posts".
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher whose client gives up after timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, category, name string) ([]byte, error) {
	u := f.BaseURL + "/" + url.PathEscape(category) + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("content: build request: %w", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", u, err)
	}
	return body, nil
}

// FSFetcher reads files from a directory tree laid out as
// {category}/{name}, typically os.DirFS of the posts directory.
type FSFetcher struct {
	FS fs.FS
}

// Fetch implements Fetcher.
func (f FSFetcher) Fetch(ctx context.Context, category, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := path.Join(category, name)
	if !fs.ValidPath(p) || strings.Contains(category, "/") || strings.Contains(name, "/") {
		return nil, fmt.Errorf("content: invalid path %q: %w", p, ErrNotFound)
	}
	data, err := fs.ReadFile(f.FS, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("content: %s: %w", p, ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}
