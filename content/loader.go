package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of article fetches in flight per load.
const DefaultConcurrency = 8

// FallbackFiles is the compiled-in file list used when a category's manifest
// cannot be read. It is a safety net and can lag behind the real content.
var FallbackFiles = map[string][]string{
	"development_tools":    {"Conda_Tutorial.md"},
	"frontend_development": {"React_Basics.md"},
	"backend_development":  {"Node_Express_Guide.md"},
	"databases":            {"MongoDB_Tutorial.md"},
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger for fetch warnings.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// WithConcurrency bounds the article fetches in flight. n <= 0 means no
// bound.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		l.concurrency = n
	}
}

// WithFallback replaces the fallback file lists.
func WithFallback(files map[string][]string) LoaderOption {
	return func(l *Loader) {
		l.fallback = files
	}
}

// Loader loads the articles of a category. It keeps no state between
// loads; every call fetches everything again.
type Loader struct {
	fetcher     Fetcher
	fallback    map[string][]string
	concurrency int
	log         *zap.Logger
}

// NewLoader returns a Loader reading through f.
func NewLoader(f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:     f,
		fallback:    FallbackFiles,
		concurrency: DefaultConcurrency,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// titleFunc derives a post title from its filename and body.
type titleFunc func(filename, body string) string

func manifestTitle(filename, _ string) string { return TitleFromFilename(filename) }

func fallbackTitle(filename, body string) string {
	if t := TitleFromContent(body); t != "" {
		return t
	}
	return TitleFromFilename(filename)
}

// Load returns the articles of category in manifest order. It never fails:
// articles that cannot be fetched are dropped, and an empty result covers
// both an empty category and a content source that is down.
func (l *Loader) Load(ctx context.Context, category string) []Post {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return []Post{}
	}
	files, err := l.manifest(ctx, category)
	if err != nil {
		l.log.Warn("index unavailable, using fallback list",
			zap.String("category", category), zap.Error(err))
		return l.fetchAll(ctx, category, l.fallback[category], fallbackTitle)
	}
	return l.fetchAll(ctx, category, files, manifestTitle)
}

// Manifest returns the file list of category's index.
func (l *Loader) Manifest(ctx context.Context, category string) ([]string, error) {
	return l.manifest(ctx, strings.ToLower(strings.TrimSpace(category)))
}

func (l *Loader) manifest(ctx context.Context, category string) ([]string, error) {
	data, err := l.fetcher.Fetch(ctx, category, IndexFile)
	if err != nil {
		return nil, err
	}
	var files []string
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("content: decode %s/%s: %w", category, IndexFile, err)
	}
	return files, nil
}

// fetchAll fetches files concurrently. Every task records its own outcome
// and returns nil, so a failed file never cancels its siblings. Results are
// collected by position, which keeps manifest order.
func (l *Loader) fetchAll(ctx context.Context, category string, files []string, title titleFunc) []Post {
	results := make([]*Post, len(files))

	var g errgroup.Group
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, name := range files {
		g.Go(func() error {
			body, err := l.fetcher.Fetch(ctx, category, name)
			if err != nil {
				l.log.Warn("failed to fetch article",
					zap.String("category", category),
					zap.String("file", name),
					zap.Error(err))
				return nil
			}
			text := string(body)
			results[i] = &Post{
				Category:    category,
				Filename:    name,
				Title:       title(name, text),
				Description: DescriptionFromContent(text),
				Content:     text,
			}
			return nil
		})
	}
	_ = g.Wait()

	posts := make([]Post, 0, len(files))
	for _, p := range results {
		if p != nil {
			posts = append(posts, *p)
		}
	}
	return posts
}
