package devblog

import (
	"github.com/a-h/templ"

	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/toc"
	"github.com/eringen/devblog/views"
)

// ViewFuncs holds the templ components the handlers render. Replace any of
// them with WithViews to restyle a page.
type ViewFuncs struct {
	Blogs          func(cfg views.SiteConfig, categories []views.Category) templ.Component
	Category       func(cfg views.SiteConfig, category string, posts []content.Post) templ.Component
	Post           func(cfg views.SiteConfig, category string, post content.Post, headings []toc.Heading, article templ.Component) templ.Component
	AdminLogin     func(cfg views.SiteConfig, showError bool, csrfToken string) templ.Component
	AdminDashboard func(cfg views.SiteConfig, source string, stats []views.CategoryStat, message, csrfToken string) templ.Component
	NotFound       func(cfg views.SiteConfig) templ.Component
	ServerError    func(cfg views.SiteConfig) templ.Component
}

// DefaultViews returns the components of the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Blogs:          views.Blogs,
		Category:       views.CategoryPage,
		Post:           views.Post,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}
