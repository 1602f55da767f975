package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/toc"
)

var testCfg = SiteConfig{Name: "Dev Blogs", URL: "https://example.com", Description: "Articles"}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestTableOfContentsEmptyRendersNothing(t *testing.T) {
	if got := render(t, TableOfContents(nil)); got != "" {
		t.Errorf("TableOfContents(nil) = %q, want empty", got)
	}
}

func TestTableOfContentsLinks(t *testing.T) {
	html := render(t, TableOfContents([]toc.Heading{
		{Level: 1, Text: "Intro", ID: "intro"},
		{Level: 3, Text: "A <b> & c", ID: "a-b-c"},
	}))
	for _, want := range []string{
		`href="#intro"`,
		`data-id="a-b-c"`,
		`margin-left:2rem`,
		`A &lt;b&gt; &amp; c`,
		`data-breakpoint="1024"`,
		`data-threshold="100"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("TableOfContents output missing %q:\n%s", want, html)
		}
	}
}

func TestPostWithoutHeadingsHasNoPanel(t *testing.T) {
	post := content.Post{Filename: "Plain.md", Title: "Plain"}
	html := render(t, Post(testCfg, "databases", post, nil, templ.Raw("<p>just text</p>")))
	if strings.Contains(html, `id="toc"`) || strings.Contains(html, "toc.js") {
		t.Errorf("post without headings should not render a TOC:\n%s", html)
	}
	if !strings.Contains(html, "<p>just text</p>") {
		t.Errorf("article body missing")
	}
	if !strings.Contains(html, `href="/blogs/databases/"`) {
		t.Errorf("back link missing")
	}
}

func TestPostWithHeadingsLoadsScript(t *testing.T) {
	post := content.Post{Filename: "Mongo.md", Title: "Mongo"}
	html := render(t, Post(testCfg, "databases", post, []toc.Heading{{Level: 2, Text: "Setup", ID: "setup"}}, templ.Raw("")))
	if !strings.Contains(html, `<script src="/public/toc.js" defer></script>`) {
		t.Errorf("toc script missing")
	}
	if !strings.Contains(html, "Back to Posts") {
		t.Errorf("back link missing")
	}
	if !strings.Contains(html, `"@type":"TechArticle"`) {
		t.Errorf("article JSON-LD missing")
	}
}

func TestCategoryEmptyMessage(t *testing.T) {
	html := render(t, CategoryPage(testCfg, "frontend_development", nil))
	if !strings.Contains(html, "No articles found in this category.") {
		t.Errorf("empty message missing")
	}
	if !strings.Contains(html, "<h1 class=\"intro\">frontend development</h1>") {
		t.Errorf("category heading should replace underscores:\n%s", html)
	}
}

func TestCategoryCardsKeepOrder(t *testing.T) {
	posts := []content.Post{
		{Filename: "Zeta.md", Title: "Zeta", Description: "last letter"},
		{Filename: "Alpha Beta.md", Title: "Alpha Beta", Description: "first"},
	}
	html := render(t, CategoryPage(testCfg, "db", posts))
	z, a := strings.Index(html, "Zeta"), strings.Index(html, "Alpha Beta")
	if z < 0 || a < 0 || z > a {
		t.Errorf("cards out of order: Zeta at %d, Alpha Beta at %d", z, a)
	}
	if !strings.Contains(html, `href="/blogs/db/Alpha%20Beta/"`) {
		t.Errorf("post link not escaped:\n%s", html)
	}
	if strings.Contains(html, "No articles found") {
		t.Errorf("empty message shown with posts")
	}
}

func TestBlogsCatalog(t *testing.T) {
	html := render(t, Blogs(testCfg, []Category{{Name: "databases", Title: "Databases", Description: "Stores", Image: "https://img/x.jpg"}}))
	for _, want := range []string{`href="/blogs/databases/"`, "<h2>Databases</h2>", `src="https://img/x.jpg"`, "<title>Blogs | Dev Blogs</title>"} {
		if !strings.Contains(html, want) {
			t.Errorf("Blogs output missing %q", want)
		}
	}
}

func TestLayoutEscapesMeta(t *testing.T) {
	html := render(t, Layout(testCfg, PageMeta{Title: `"quoted" <title>`}, templ.Raw("")))
	if !strings.Contains(html, "<title>&#34;quoted&#34; &lt;title&gt; | Dev Blogs</title>") {
		t.Errorf("title not escaped:\n%s", html)
	}
}

func TestAdminDashboard(t *testing.T) {
	html := render(t, AdminDashboard(testCfg, "store", []CategoryStat{
		{Name: "databases", Files: 3, Bytes: 2048, Updated: time.Now().Add(-2 * time.Hour)},
	}, "reindexed", "tok"))
	for _, want := range []string{"2.0 kB", "2 hours ago", "reindexed", `value="tok"`, "/admin/reindex/", "/admin/import/"} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestAdminLoginError(t *testing.T) {
	if html := render(t, AdminLogin(testCfg, true, "tok")); !strings.Contains(html, "Invalid password.") {
		t.Errorf("login error missing")
	}
	if html := render(t, AdminLogin(testCfg, false, "tok")); strings.Contains(html, "Invalid password.") {
		t.Errorf("login error shown without failure")
	}
}

func TestCategoryTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"frontend_development", "frontend development"},
		{"databases", "databases"},
		{"a__b", "a  b"},
	}
	for _, tt := range tests {
		if got := CategoryTitle(tt.input); got != tt.expected {
			t.Errorf("CategoryTitle(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
