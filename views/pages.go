package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/toc"
)

// Blogs is the category catalog.
func Blogs(cfg SiteConfig, categories []Category) templ.Component {
	body := component(func(p *page) {
		p.raw(`<div class="intro"><h1>Developer Blogs</h1><p>Explore our collection of in-depth articles covering various aspects of software development.</p></div>`)
		p.raw(`<div class="cards">`)
		for _, c := range categories {
			p.raw(`<a class="card"`)
			p.attr("href", CategoryLink(c.Name))
			p.raw(`>`)
			if c.Image != "" {
				p.raw(`<img loading="lazy"`)
				p.attr("src", c.Image)
				p.attr("alt", c.Title)
				p.raw(`>`)
			}
			p.raw(`<h2>`)
			p.text(c.Title)
			p.raw(`</h2><p>`)
			p.text(c.Description)
			p.raw(`</p></a>`)
		}
		p.raw(`</div>`)
	})
	return Layout(cfg, PageMeta{
		Title:       "Blogs",
		Description: cfg.Description,
		URL:         buildURL(cfg.URL, "blogs"),
	}, body)
}

// CategoryPage lists the articles of one category in the order they were loaded.
func CategoryPage(cfg SiteConfig, category string, posts []content.Post) templ.Component {
	title := CategoryTitle(category)
	body := component(func(p *page) {
		p.raw(`<h1 class="intro">`)
		p.text(title)
		p.raw(`</h1><div class="cards">`)
		for _, post := range posts {
			p.raw(`<a class="card"`)
			p.attr("href", PostLink(category, post))
			p.raw(`><h2>`)
			p.text(post.Title)
			p.raw(`</h2><p>`)
			p.text(post.Description)
			p.raw(`</p></a>`)
		}
		if len(posts) == 0 {
			p.raw(`<p class="empty">No articles found in this category.</p>`)
		}
		p.raw(`</div>`)
	})
	return Layout(cfg, PageMeta{
		Title: title,
		URL:   buildURL(cfg.URL, "blogs", category),
	}, body)
}

// Post shows one article with its table of contents.
func Post(cfg SiteConfig, category string, post content.Post, headings []toc.Heading, article templ.Component) templ.Component {
	body := component(func(p *page) {
		p.raw(`<div class="article">`)
		p.render(TableOfContents(headings))
		p.raw(`<div class="prose"><a class="back"`)
		p.attr("href", CategoryLink(category))
		p.raw(`>&larr; Back to Posts</a><article class="markdown-content">`)
		p.render(article)
		p.raw(`</article></div></div>`)
		p.raw(`<script type="application/ld+json">` + ArticleJsonLD(cfg, category, post) + `</script>`)
	})
	return Layout(cfg, PageMeta{
		Title:       post.Title,
		Description: post.Description,
		URL:         buildURL(cfg.URL, "blogs", category, post.Slug()),
		OGType:      "article",
		TOC:         len(headings) > 0,
	}, body)
}

// TableOfContents renders the heading panel. It renders nothing at all when
// there are no headings. The data attributes carry the navigator settings
// to the browser script.
func TableOfContents(headings []toc.Heading) templ.Component {
	return component(func(p *page) {
		if len(headings) == 0 {
			return
		}
		p.raw(`<nav id="toc" class="toc open" aria-label="Table of Contents"`)
		p.attr("data-breakpoint", strconv.Itoa(toc.DefaultBreakpoint))
		p.attr("data-threshold", strconv.Itoa(toc.DefaultThreshold))
		p.raw(`><button type="button" class="toc-toggle" aria-controls="toc-list" aria-expanded="false">Contents</button>`)
		p.raw(`<div id="toc-list" class="toc-list"><h3>Table of Contents</h3><ul>`)
		for _, h := range headings {
			p.raw(`<li`)
			p.attr("class", "toc-level-"+strconv.Itoa(h.Level))
			p.attr("style", "margin-left:"+strconv.Itoa(h.Level-1)+"rem")
			p.raw(`><a`)
			p.attr("href", "#"+h.ID)
			p.attr("data-id", h.ID)
			p.raw(`>`)
			p.text(h.Text)
			p.raw(`</a></li>`)
		}
		p.raw(`</ul></div></nav>`)
	})
}

// NotFound is the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return Layout(cfg, PageMeta{Title: "Not found"}, component(func(p *page) {
		p.raw(`<div class="intro"><h1>404</h1><p>This page does not exist.</p><p><a href="/blogs/">Browse the blogs</a></p></div>`)
	}))
}

// ServerError is the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return Layout(cfg, PageMeta{Title: "Error"}, component(func(p *page) {
		p.raw(`<div class="intro"><h1>Something went wrong</h1><p>Please try again in a moment.</p></div>`)
	}))
}
