package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// memFetcher serves files from a map and records what was requested.
type memFetcher struct {
	mu      sync.Mutex
	files   map[string]string
	fail    map[string]error
	delay   map[string]time.Duration
	fetched []string
}

func (m *memFetcher) Fetch(ctx context.Context, category, name string) ([]byte, error) {
	key := category + "/" + name
	m.mu.Lock()
	m.fetched = append(m.fetched, key)
	d := m.delay[key]
	err := m.fail[key]
	body, ok := m.files[key]
	m.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(body), nil
}

func (m *memFetcher) requested() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.fetched...)
}

func TestLoadManifestHappyPath(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := &memFetcher{files: map[string]string{
		"frontend/index.json":      `["React_Basics.md","Vue_Intro.md"]`,
		"frontend/React_Basics.md": "# React\n\nComponents all the way down.",
		"frontend/Vue_Intro.md":    "# Vue\n\nProgressive framework.",
	}}
	posts := NewLoader(f).Load(context.Background(), "frontend")

	require.Len(t, posts, 2)
	assert.Equal(t, "React Basics", posts[0].Title)
	assert.Equal(t, "Components all the way down.", posts[0].Description)
	assert.Equal(t, "React_Basics.md", posts[0].Filename)
	assert.Equal(t, "frontend", posts[0].Category)
	assert.Equal(t, "# React\n\nComponents all the way down.", posts[0].Content)
	assert.Equal(t, "Vue Intro", posts[1].Title)
}

func TestLoadDropsFailedArticles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := &memFetcher{
		files: map[string]string{
			"db/index.json": `["a.md","b.md","c.md"]`,
			"db/a.md":       "# A\nalpha",
			"db/b.md":       "# B\nbeta",
			"db/c.md":       "# C\ngamma",
		},
		fail: map[string]error{"db/b.md": errors.New("connection reset")},
	}
	posts := NewLoader(f).Load(context.Background(), "db")

	require.Len(t, posts, 2)
	assert.Equal(t, "a.md", posts[0].Filename)
	assert.Equal(t, "c.md", posts[1].Filename)
}

func TestLoadKeepsManifestOrderRegardlessOfCompletion(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := &memFetcher{
		files: map[string]string{
			"x/index.json": `["slow.md","medium.md","fast.md"]`,
			"x/slow.md":    "slow",
			"x/medium.md":  "medium",
			"x/fast.md":    "fast",
		},
		delay: map[string]time.Duration{
			"x/slow.md":   60 * time.Millisecond,
			"x/medium.md": 30 * time.Millisecond,
		},
	}
	posts := NewLoader(f).Load(context.Background(), "x")

	require.Len(t, posts, 3)
	assert.Equal(t, []string{"slow.md", "medium.md", "fast.md"},
		[]string{posts[0].Filename, posts[1].Filename, posts[2].Filename})
}

func TestLoadFetchesConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var inFlight, peak int32
	files := map[string]string{"c/index.json": `["1.md","2.md","3.md","4.md"]`}
	f := FetcherFunc(func(ctx context.Context, category, name string) ([]byte, error) {
		if name == IndexFile {
			return []byte(files["c/index.json"]), nil
		}
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return []byte("body"), nil
	})

	posts := NewLoader(f, WithConcurrency(2)).Load(context.Background(), "c")
	require.Len(t, posts, 4)
	assert.Equal(t, int32(2), atomic.LoadInt32(&peak))
}

func TestLoadFallsBackWhenIndexMissing(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := &memFetcher{files: map[string]string{
		"frontend_development/React_Basics.md": "# React Basics Tutorial\nLearn React.",
	}}
	posts := NewLoader(f).Load(context.Background(), "frontend_development")

	assert.Equal(t, []string{
		"frontend_development/index.json",
		"frontend_development/React_Basics.md",
	}, f.requested())
	require.Len(t, posts, 1)
	assert.Equal(t, "React Basics Tutorial", posts[0].Title, "fallback titles come from the first line")
	assert.Equal(t, "Learn React.", posts[0].Description)
}

func TestLoadFallsBackOnHTTP404(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/posts/databases/MongoDB_Tutorial.md" {
			_, _ = w.Write([]byte("# MongoDB Tutorial\n\nDocuments and collections."))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := &HTTPFetcher{BaseURL: srv.URL + "/posts", Client: srv.Client()}
	var posts []Post
	require.NotPanics(t, func() {
		posts = NewLoader(fetcher).Load(context.Background(), "databases")
	})

	mu.Lock()
	assert.Equal(t, []string{"/posts/databases/index.json", "/posts/databases/MongoDB_Tutorial.md"}, paths)
	mu.Unlock()
	require.Len(t, posts, 1)
	assert.Equal(t, "MongoDB Tutorial", posts[0].Title)
}

func TestLoadFallsBackOnBadJSON(t *testing.T) {
	f := &memFetcher{files: map[string]string{
		"databases/index.json":          `{"not": "a list"}`,
		"databases/MongoDB_Tutorial.md": "# Mongo\nbody",
	}}
	posts := NewLoader(f).Load(context.Background(), "databases")
	require.Len(t, posts, 1)
	assert.Equal(t, "Mongo", posts[0].Title)
}

func TestLoadUnknownCategoryIsEmpty(t *testing.T) {
	f := &memFetcher{files: map[string]string{}}
	posts := NewLoader(f).Load(context.Background(), "no_such_category")
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestLoadEmptyCategoryFetchesNothing(t *testing.T) {
	f := &memFetcher{files: map[string]string{}}
	assert.Empty(t, NewLoader(f).Load(context.Background(), "  "))
	assert.Empty(t, f.requested())
}

func TestLoadLowercasesCategory(t *testing.T) {
	fsys := fstest.MapFS{
		"databases/index.json": {Data: []byte(`["SQL.md"]`)},
		"databases/SQL.md":     {Data: []byte("# SQL\nJoins.")},
	}
	posts := NewLoader(FSFetcher{FS: fsys}).Load(context.Background(), "Databases")
	require.Len(t, posts, 1)
	assert.Equal(t, "databases", posts[0].Category)
}

func TestLoadEmptyManifest(t *testing.T) {
	f := &memFetcher{files: map[string]string{"databases/index.json": `[]`}}
	posts := NewLoader(f).Load(context.Background(), "databases")
	assert.Empty(t, posts)
	assert.Equal(t, []string{"databases/index.json"}, f.requested(), "an empty manifest does not trigger the fallback")
}

func TestLoadLogsWarnings(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := &memFetcher{files: map[string]string{
		"a/index.json": `["gone.md"]`,
	}}
	NewLoader(f, WithLogger(zap.New(core))).Load(context.Background(), "a")

	entries := logs.FilterMessage("failed to fetch article").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "gone.md", entries[0].ContextMap()["file"])
}

func TestLoadCancelledContextDropsEverything(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := &memFetcher{
		files: map[string]string{
			"a/index.json": `["one.md"]`,
			"a/one.md":     "one",
		},
		delay: map[string]time.Duration{"a/one.md": time.Second},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	posts := NewLoader(f, WithFallback(map[string][]string{})).Load(ctx, "a")
	assert.Empty(t, posts)
}
