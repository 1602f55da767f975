// Package reader is a terminal front end for a blog category. It lists the
// category's articles and renders the selected one with glamour, with a
// table of contents that follows the scroll position.
//
// The table of contents is a toc.Navigator attached to a toc.Viewport. The
// program reports every terminal resize and scroll to the viewport, so the
// navigator sees the same signals a browser would give it, measured in
// columns and lines instead of pixels.
package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/toc"
)

// Terminal defaults, in columns and lines.
const (
	DefaultBreakpoint = 100
	DefaultThreshold  = 3
	panelWidth        = 32
)

type state int

const (
	stateList state = iota
	stateArticle
)

// postsLoadedMsg carries the result of one load. seq identifies the load so
// a slow response cannot overwrite a newer one.
type postsLoadedMsg struct {
	seq      int
	category string
	posts    []content.Post
}

type postItem struct{ post content.Post }

func (i postItem) Title() string       { return i.post.Title }
func (i postItem) Description() string { return i.post.Description }
func (i postItem) FilterValue() string { return i.post.Title }

// Option configures a Model.
type Option func(*Model)

// WithStyle selects the glamour style ("dark", "light", "notty", ...).
func WithStyle(name string) Option {
	return func(m *Model) { m.style = name }
}

// WithUniqueIDs disambiguates repeated heading ids, matching the server's
// unique_heading_ids setting.
func WithUniqueIDs() Option {
	return func(m *Model) { m.extract = append(m.extract, toc.WithUniqueIDs()) }
}

// WithBreakpoint sets the terminal width, in columns, at which the table of
// contents is pinned beside the article.
func WithBreakpoint(cols int) Option {
	return func(m *Model) { m.breakpoint = cols }
}

// WithThreshold sets how many lines below the top a heading becomes current.
func WithThreshold(lines int) Option {
	return func(m *Model) { m.threshold = lines }
}

// WithLogger sets the logger for render failures.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) { m.log = log }
}

// Model is the Bubble Tea model of the reader.
type Model struct {
	ctx      context.Context
	loader   *content.Loader
	category string

	style      string
	extract    []toc.ExtractOption
	breakpoint int
	threshold  int
	log        *zap.Logger

	width, height int
	state         state
	seq           int
	loading       bool
	posts         []content.Post
	list          list.Model

	// Article state. window outlives articles; nav and detach belong to
	// the open article.
	window   *toc.Viewport
	post     *content.Post
	headings []toc.Heading
	anchors  []float64
	nav      *toc.Navigator
	detach   func()
	vp       viewport.Model
}

// New returns a reader over category.
func New(ctx context.Context, loader *content.Loader, category string, opts ...Option) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = categoryTitle(category)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	m := Model{
		ctx:        ctx,
		loader:     loader,
		category:   category,
		style:      "dark",
		breakpoint: DefaultBreakpoint,
		threshold:  DefaultThreshold,
		log:        zap.NewNop(),
		seq:        1,
		loading:    true,
		list:       l,
		window:     toc.NewViewport(0, 0),
		vp:         viewport.New(0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the reader full screen and blocks until the user quits or ctx
// is done.
func Run(ctx context.Context, loader *content.Loader, category string, opts ...Option) error {
	m := New(ctx, loader, category, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.closeArticle()
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("reader: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

// load returns the command that loads the category under the current seq.
func (m Model) load() tea.Cmd {
	seq, ctx, loader, category := m.seq, m.ctx, m.loader, m.category
	return func() tea.Msg {
		return postsLoadedMsg{seq: seq, category: category, posts: loader.Load(ctx, category)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.window.Resize(float64(msg.Width), float64(msg.Height))
		m.list.SetSize(msg.Width, msg.Height-1)
		if m.state == stateArticle {
			m.layout()
		}
		return m, nil

	case postsLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.posts = msg.posts
		items := make([]list.Item, len(msg.posts))
		for i, p := range msg.posts {
			items[i] = postItem{post: p}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeArticle()
			return m, tea.Quit
		}
		if m.state == stateArticle {
			return m.updateArticle(msg)
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "r":
				m.seq++
				m.loading = true
				return m, m.load()
			case "enter":
				if item, ok := m.list.SelectedItem().(postItem); ok {
					m.open(item.post)
				}
				return m, nil
			}
		}
	}

	if m.state == stateArticle {
		return m.scrollViewport(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateArticle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.closeArticle()
		return m, tea.Quit
	case "esc", "backspace":
		m.closeArticle()
		return m, nil
	case "t":
		m.nav.Toggle()
		return m, nil
	case "n":
		m.jump(1)
		return m, nil
	case "p":
		m.jump(-1)
		return m, nil
	}
	return m.scrollViewport(msg)
}

// scrollViewport passes msg to the article viewport and reports any change
// of offset to the window.
func (m Model) scrollViewport(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.vp.YOffset
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	if m.vp.YOffset != before {
		m.window.Scroll(float64(m.vp.YOffset))
	}
	return m, cmd
}

// open shows p and attaches a fresh navigator to the window.
func (m *Model) open(p content.Post) {
	m.closeArticle()
	m.post = &p
	m.headings = toc.Extract(p.Content, m.extract...)
	m.nav = toc.NewNavigator(m.headings,
		toc.WithBreakpoint(float64(m.breakpoint)),
		toc.WithThreshold(float64(m.threshold)))
	m.detach = m.nav.Attach(m.window)
	m.state = stateArticle
	m.vp.GotoTop()
	m.layout()
}

// closeArticle detaches the navigator and returns to the list.
func (m *Model) closeArticle() {
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
	m.nav = nil
	m.post = nil
	m.headings = nil
	m.anchors = nil
	m.state = stateList
}

// layout sizes the article for the current window and panel, renders it and
// re-measures the heading anchors.
func (m *Model) layout() {
	if m.post == nil {
		return
	}
	width := m.width
	if m.pinned() {
		width -= panelWidth
	}
	if width < 20 {
		width = 20
	}
	height := m.height - 2
	if height < 1 {
		height = 1
	}
	m.vp.Width, m.vp.Height = width, height

	rendered, err := m.render(m.post.Content, width)
	if err != nil {
		m.log.Warn("render failed, showing source",
			zap.String("category", m.post.Category),
			zap.String("file", m.post.Filename),
			zap.Error(err))
		rendered = m.post.Content
	}
	m.vp.SetContent(rendered)
	m.anchors = anchorLines(rendered, m.headings)
	m.nav.SetAnchors(m.anchors)
	m.window.Scroll(float64(m.vp.YOffset))
}

func (m *Model) render(src string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return "", err
	}
	return r.Render(src)
}

// jump selects the heading dir steps away from the active one.
func (m *Model) jump(dir int) {
	if m.nav == nil || m.nav.Empty() {
		return
	}
	i := -1
	for j, h := range m.headings {
		if h.ID == m.nav.Active() {
			i = j
			break
		}
	}
	i += dir
	if i < 0 {
		i = 0
	}
	if i >= len(m.headings) {
		i = len(m.headings) - 1
	}
	y, ok := m.nav.Select(m.headings[i].ID)
	if !ok {
		return
	}
	m.vp.SetYOffset(int(y))
	m.window.Scroll(float64(m.vp.YOffset))
}

// pinned reports whether the panel sits beside the article.
func (m *Model) pinned() bool {
	return m.nav != nil && m.nav.Mode() == toc.ModeWide && m.nav.Visible()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	panelStyle  = lipgloss.NewStyle().
			Width(panelWidth - 2).
			PaddingRight(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("241"))
)

func (m Model) View() string {
	if m.state == stateList {
		if m.loading {
			return mutedStyle.Render("Loading " + categoryTitle(m.category) + "...")
		}
		if len(m.posts) == 0 {
			return titleStyle.Render(categoryTitle(m.category)) + "\n\n" +
				"No articles found in this category.\n\n" +
				mutedStyle.Render("r reload • q quit")
		}
		return m.list.View() + "\n" + mutedStyle.Render("enter read • / filter • r reload • q quit")
	}

	header := titleStyle.Render(m.post.Title)
	help := mutedStyle.Render("↑/↓ scroll • n/p next/prev heading • t contents • esc back • q quit")

	var body string
	switch {
	case m.pinned():
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.panel(), m.vp.View())
	case m.nav.Visible():
		// Narrow: the open panel slides over the article.
		body = m.panel()
	default:
		body = m.vp.View()
	}
	return header + "\n" + body + "\n" + help
}

// panel draws the table of contents with the active heading highlighted.
func (m Model) panel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Table of Contents"))
	active := m.nav.Active()
	for _, h := range m.headings {
		line := strings.Repeat("  ", h.Level-1) + h.Text
		line = ansi.Truncate(line, panelWidth-3, "…")
		b.WriteString("\n")
		if h.ID == active {
			b.WriteString(activeStyle.Render(line))
		} else {
			b.WriteString(line)
		}
	}
	return panelStyle.Height(m.vp.Height).Render(b.String())
}

func categoryTitle(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}
