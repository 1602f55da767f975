package views

import "time"

// SiteConfig holds the site-wide settings the templates need. Every handler
// passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	TOC         bool   // load the table-of-contents script
}

// Category is a card on the /blogs catalog.
type Category struct {
	Name        string // directory name, used in links
	Title       string
	Description string
	Image       string
}

// CategoryStat is a row of the admin dashboard.
type CategoryStat struct {
	Name    string
	Files   int
	Bytes   int64
	Updated time.Time
}
