package views

import "github.com/a-h/templ"

const styles = `
*{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",sans-serif;color:#1f2937;background:#f9fafb;line-height:1.6}
a{color:#2563eb;text-decoration:none}a:hover{text-decoration:underline}
header.site{background:#fff;border-bottom:1px solid #e5e7eb}
header.site nav{max-width:72rem;margin:0 auto;padding:1rem;display:flex;gap:1.5rem;align-items:center}
header.site .brand{font-weight:700;color:#111827}
main{max-width:72rem;margin:0 auto;padding:3rem 1rem}
.intro{text-align:center;margin-bottom:3rem}.intro p{color:#4b5563;font-size:1.25rem}
.cards{display:grid;gap:1.5rem}
.card{display:block;background:#fff;border-radius:.5rem;box-shadow:0 1px 3px rgba(0,0,0,.1);padding:1.5rem;color:inherit}
.card:hover{box-shadow:0 4px 12px rgba(0,0,0,.12);text-decoration:none}
.card img{width:100%;max-height:16rem;object-fit:cover;border-radius:.375rem;margin-bottom:1rem}
.card h2{margin:0 0 .5rem;font-size:1.5rem;color:#111827}.card p{margin:0;color:#4b5563}
.empty{text-align:center;padding:3rem 0;font-size:1.25rem;color:#4b5563}
.article{position:relative}
.prose{max-width:48rem;margin:0 auto}
.prose pre{overflow-x:auto;padding:1rem;border-radius:.375rem}
.prose table{border-collapse:collapse}.prose th,.prose td{border:1px solid #e5e7eb;padding:.25rem .75rem}
.back{display:inline-block;margin-bottom:2rem}
.toc{position:fixed;top:6rem;right:1rem;width:16rem;max-height:calc(100vh - 8rem);overflow-y:auto;background:#fff;border:1px solid #e5e7eb;border-radius:.5rem;padding:1rem;font-size:.875rem}
.toc ul{list-style:none;margin:0;padding:0}.toc li{margin:.25rem 0}
.toc a{color:#4b5563}.toc a.active{color:#2563eb;font-weight:600}
.toc-toggle{display:none}
@media (max-width:1023px){
.toc{top:auto;bottom:1rem;right:1rem;width:auto;max-width:calc(100vw - 2rem);padding:0;border:0;background:transparent}
.toc-toggle{display:block;margin-left:auto;border:0;border-radius:9999px;background:#2563eb;color:#fff;padding:.75rem 1rem;cursor:pointer}
.toc .toc-list{display:none;background:#fff;border:1px solid #e5e7eb;border-radius:.5rem;padding:1rem;margin-bottom:.5rem;max-height:60vh;overflow-y:auto}
.toc.open .toc-list{display:block}
}
form.inline{display:inline}
.admin table{width:100%;border-collapse:collapse;background:#fff}.admin th,.admin td{text-align:left;padding:.5rem;border-bottom:1px solid #e5e7eb}
.notice{background:#ecfdf5;border:1px solid #a7f3d0;padding:.75rem 1rem;border-radius:.375rem;margin-bottom:1rem}
.error{color:#b91c1c}
`

// Layout wraps body in the HTML document shell.
func Layout(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return component(func(p *page) {
		title := cfg.Name
		if meta.Title != "" {
			title = meta.Title + " | " + cfg.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(`</title><meta name="description"`)
		p.attr("content", desc)
		p.raw(`>`)
		if meta.URL != "" {
			p.raw(`<link rel="canonical"`)
			p.attr("href", meta.URL)
			p.raw(`><meta property="og:url"`)
			p.attr("content", meta.URL)
			p.raw(`>`)
		}
		p.raw(`<meta property="og:title"`)
		p.attr("content", title)
		p.raw(`><meta property="og:type"`)
		p.attr("content", ogType)
		p.raw(`><meta property="og:description"`)
		p.attr("content", desc)
		p.raw(`><link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
		p.raw(`<script type="application/ld+json">` + WebsiteJsonLD(cfg) + `</script>`)
		p.raw(`<style>` + styles + `</style>`)
		if meta.TOC {
			p.raw(`<script src="/public/toc.js" defer></script>`)
		}
		p.raw(`</head><body><header class="site"><nav><a class="brand" href="/blogs/">`)
		p.text(cfg.Name)
		p.raw(`</a><a href="/blogs/">Blogs</a></nav></header><main>`)
		p.render(body)
		p.raw(`</main></body></html>`)
	})
}
