// Package markdown renders article markdown to HTML as a templ component.
//
// Headings that toc.Extract reports get an id attribute from the same
// toc.ParseHeading rule and toc.Slugger, so every table of contents link has
// a target. Other headings (setext, quoted, listed) carry no id.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/eringen/devblog/toc"
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	unique bool
	style  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithUniqueIDs disambiguates repeated heading ids. Pair it with
// toc.WithUniqueIDs so the navigator agrees.
func WithUniqueIDs() Option {
	return func(r *Renderer) {
		r.unique = true
	}
}

// WithCodeStyle sets the chroma style used for fenced code (default "github").
func WithCodeStyle(style string) Option {
	return func(r *Renderer) {
		r.style = style
	}
}

// New returns a Renderer with GitHub-flavoured extensions. Raw HTML in the
// source is passed through; articles are authored content, not user input.
func New(opts ...Option) *Renderer {
	r := &Renderer{style: "github"}
	for _, opt := range opts {
		opt(r)
	}
	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(headingIDs{unique: r.unique}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return r
}

// Render writes the HTML for src to w.
func (r *Renderer) Render(w io.Writer, src string) error {
	return r.md.Convert([]byte(src), w)
}

// String returns the HTML for src.
func (r *Renderer) String(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, src); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component returns a templ.Component that renders src.
func (r *Renderer) Component(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := r.Render(&buf, src); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

var defaultRenderer = New()

// Markdown returns a templ.Component that renders content with the default
// renderer.
func Markdown(content string) templ.Component {
	return defaultRenderer.Component(content)
}

// Render writes the HTML for src to w using the default renderer.
func Render(w io.Writer, src string) error {
	return defaultRenderer.Render(w, src)
}

// headingIDs sets the id attribute of each heading toc.Extract would list,
// in document order.
type headingIDs struct {
	unique bool
}

func (h headingIDs) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	src := reader.Source()
	slugger := &toc.Slugger{Unique: h.unique}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if _, title, ok := toc.ParseHeading(headingLine(src, heading)); ok {
			heading.SetAttributeString("id", []byte(slugger.Slug(title)))
		}
		return ast.WalkSkipChildren, nil
	})
}

// headingLine returns the whole source line holding the heading's text.
func headingLine(src []byte, n *ast.Heading) string {
	lines := n.Lines()
	if lines.Len() == 0 {
		return ""
	}
	start := lines.At(0).Start
	begin := bytes.LastIndexByte(src[:start], '\n') + 1
	end := bytes.IndexByte(src[start:], '\n')
	if end < 0 {
		return string(src[begin:])
	}
	return string(src[begin : start+end])
}
