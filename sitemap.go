package devblog

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/devblog/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// renderSitemap lists the catalog, every configured category and the
// articles loaded for each, in catalog order.
func (a *App) renderSitemap(c echo.Context, sections map[string][]content.Post) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base, "blogs")},
	}
	for _, cat := range a.Config.Categories {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "blogs", cat.Name)})
		for _, p := range sections[cat.Name] {
			urls = append(urls, sitemapURL{Loc: BuildURL(base, "blogs", cat.Name, p.Slug())})
		}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
