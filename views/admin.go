package views

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// AdminLogin is the password form.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return Layout(cfg, PageMeta{Title: "Admin"}, component(func(p *page) {
		p.raw(`<div class="admin"><h1>Admin</h1>`)
		if showError {
			p.raw(`<p class="error">Invalid password.</p>`)
		}
		p.raw(`<form method="post" action="/admin/login/"><input type="hidden" name="_csrf"`)
		p.attr("value", csrfToken)
		p.raw(`><label>Password <input type="password" name="password" autocomplete="current-password" required></label> <button type="submit">Log in</button></form></div>`)
	}))
}

// AdminDashboard lists the categories of the article tree with the actions
// that maintain it.
func AdminDashboard(cfg SiteConfig, source string, stats []CategoryStat, message, csrfToken string) templ.Component {
	return Layout(cfg, PageMeta{Title: "Dashboard"}, component(func(p *page) {
		p.raw(`<div class="admin"><h1>Dashboard</h1>`)
		if message != "" {
			p.raw(`<p class="notice">`)
			p.text(message)
			p.raw(`</p>`)
		}
		p.raw(`<p>Serving articles from <strong>`)
		p.text(source)
		p.raw(`</strong>.</p>`)
		p.raw(`<table><thead><tr><th>Category</th><th>Articles</th><th>Size</th><th>Updated</th></tr></thead><tbody>`)
		for _, st := range stats {
			p.raw(`<tr><td><a`)
			p.attr("href", CategoryLink(st.Name))
			p.raw(`>`)
			p.text(st.Name)
			p.raw(`</a></td><td>`)
			p.text(strconv.Itoa(st.Files))
			p.raw(`</td><td>`)
			p.text(humanize.Bytes(uint64(st.Bytes)))
			p.raw(`</td><td>`)
			if !st.Updated.IsZero() {
				p.text(humanize.Time(st.Updated))
			}
			p.raw(`</td></tr>`)
		}
		if len(stats) == 0 {
			p.raw(`<tr><td colspan="4">No categories yet.</td></tr>`)
		}
		p.raw(`</tbody></table><p>`)
		for _, action := range []struct{ path, label string }{
			{"/admin/reindex/", "Regenerate indexes"},
			{"/admin/import/", "Import directory into store"},
		} {
			p.raw(`<form class="inline" method="post"`)
			p.attr("action", action.path)
			p.raw(`><input type="hidden" name="_csrf"`)
			p.attr("value", csrfToken)
			p.raw(`><button type="submit">`)
			p.text(action.label)
			p.raw(`</button></form> `)
		}
		p.raw(`<form class="inline" method="post" action="/admin/logout/"><input type="hidden" name="_csrf"`)
		p.attr("value", csrfToken)
		p.raw(`><button type="submit">Log out</button></form></p></div>`)
	}))
}
