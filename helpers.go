package devblog

import (
	"html"
	"net/url"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/eringen/devblog/views"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

var textPolicy = bluemonday.StrictPolicy()

// plainText strips markup from article-derived text. Descriptions are the
// first prose line of an article and may carry inline HTML.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func categoryTitle(name string) string {
	return views.CategoryTitle(name)
}

func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// catalog returns the /blogs cards in configured order.
func (a *App) catalog() []views.Category {
	out := make([]views.Category, 0, len(a.Config.Categories))
	for _, c := range a.Config.Categories {
		out = append(out, views.Category{
			Name:        c.Name,
			Title:       c.Title,
			Description: c.Description,
			Image:       c.Image,
		})
	}
	return out
}

// categoryConfig returns the catalog entry for name, or a bare entry for
// categories that exist only on disk.
func (a *App) categoryConfig(name string) CategoryConfig {
	for _, c := range a.Config.Categories {
		if c.Name == name {
			return c
		}
	}
	return CategoryConfig{Name: name, Title: categoryTitle(name)}
}
