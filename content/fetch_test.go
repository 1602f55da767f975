package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/posts/dev/index.json":
			_, _ = w.Write([]byte(`["a b.md"]`))
		case "/posts/dev/a%20b.md":
			_, _ = w.Write([]byte("# spaced"))
		case "/posts/dev/boom.md":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/posts/", 5*time.Second)
	ctx := context.Background()

	body, err := f.Fetch(ctx, "dev", IndexFile)
	require.NoError(t, err)
	assert.Equal(t, `["a b.md"]`, string(body))

	body, err = f.Fetch(ctx, "dev", "a b.md")
	require.NoError(t, err)
	assert.Equal(t, "# spaced", string(body))

	_, err = f.Fetch(ctx, "dev", "missing.md")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.Fetch(ctx, "dev", "boom.md")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestHTTPFetcherEscapesTraversal(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.EscapedPath()
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := &HTTPFetcher{BaseURL: srv.URL, Client: srv.Client()}
	_, err := f.Fetch(context.Background(), "dev", "../secret")
	require.Error(t, err)
	assert.Equal(t, "/dev/..%2Fsecret", got)
}

func TestFSFetcher(t *testing.T) {
	f := FSFetcher{FS: fstest.MapFS{
		"dev/a.md": {Data: []byte("alpha")},
	}}
	ctx := context.Background()

	body, err := f.Fetch(ctx, "dev", "a.md")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(body))

	_, err = f.Fetch(ctx, "dev", "b.md")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.Fetch(ctx, "dev", "../dev/a.md")
	assert.ErrorIs(t, err, ErrNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = f.Fetch(cancelled, "dev", "a.md")
	assert.ErrorIs(t, err, context.Canceled)
}
