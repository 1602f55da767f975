package devblog

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/toc"
)

func handleRootRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/blogs/")
}

func (a *App) handleBlogs(c echo.Context) error {
	return Render(c, a.Views.Blogs(a.viewConfig(), a.catalog()))
}

func (a *App) handleCategory(c echo.Context) error {
	category := normalizeCategory(pathParam(c, "category"))
	posts := a.Loader.Load(c.Request().Context(), category)
	return Render(c, a.Views.Category(a.viewConfig(), category, posts))
}

func (a *App) handlePost(c echo.Context) error {
	category := normalizeCategory(pathParam(c, "category"))
	slug := pathParam(c, "file")
	posts := a.Loader.Load(c.Request().Context(), category)
	post, ok := findPost(posts, slug)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.viewConfig()))
	}
	headings := toc.Extract(post.Content, a.tocOptions()...)
	return Render(c, a.Views.Post(a.viewConfig(), category, post, headings, a.Renderer.Component(post.Content)))
}

func (a *App) handleFeed(c echo.Context) error {
	category := normalizeCategory(pathParam(c, "category"))
	posts := a.Loader.Load(c.Request().Context(), category)
	return a.renderRSS(c, category, posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	sections := make(map[string][]content.Post, len(a.Config.Categories))
	for _, cat := range a.Config.Categories {
		sections[cat.Name] = a.Loader.Load(ctx, cat.Name)
	}
	return a.renderSitemap(c, sections)
}

// handleOrigin serves the article tree: index.json manifests and markdown
// files, from the configured source.
func (a *App) handleOrigin(c echo.Context) error {
	category := pathParam(c, "category")
	name := pathParam(c, "file")
	data, err := a.origin.Fetch(c.Request().Context(), category, name)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	ctype := "text/markdown; charset=utf-8"
	if path.Ext(name) == ".json" {
		ctype = echo.MIMEApplicationJSONCharsetUTF8
	} else if !strings.HasSuffix(name, ".md") {
		ctype = http.DetectContentType(data)
	}
	return serveContent(c, ctype, data)
}

func (a *App) handleFavicon(c echo.Context) error {
	p := filepath.Join(a.staticDir, "favicon.svg")
	if _, err := os.Stat(p); err == nil {
		return c.File(p)
	}
	data, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return err
	}
	return serveContent(c, "image/svg+xml", data)
}

func (a *App) handleRobots(c echo.Context) error {
	p := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(p); err == nil {
		return c.File(p)
	}
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	if a.Config.AdminEnabled() {
		b.WriteString("Disallow: /admin/\n")
	}
	b.WriteString("Sitemap: " + strings.TrimSuffix(a.Config.URL, "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.viewConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error",
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err))
		_ = RenderStatus(c, code, a.Views.ServerError(a.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// pathParam returns a path parameter unescaped. Echo leaves parameters
// escaped when the request path carries encoded characters.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// findPost matches a URL slug against the loaded posts; the filename with
// or without its extension is accepted.
func findPost(posts []content.Post, slug string) (content.Post, bool) {
	for _, p := range posts {
		if p.Slug() == slug || p.Filename == slug {
			return p, true
		}
	}
	return content.Post{}, false
}
