package toc

// Mode is the presentation of the navigator panel.
type Mode int

const (
	// ModeWide pins the panel next to the article.
	ModeWide Mode = iota
	// ModeNarrow shows the panel as a slide-over opened on demand.
	ModeNarrow
)

func (m Mode) String() string {
	if m == ModeNarrow {
		return "narrow"
	}
	return "wide"
}

const (
	// DefaultBreakpoint is the width at and above which the panel is pinned.
	DefaultBreakpoint = 1024
	// DefaultThreshold is the distance from the viewport top at which a
	// heading becomes current, and the gap left above a heading after a jump.
	DefaultThreshold = 100
)

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithBreakpoint sets the wide/narrow width boundary.
func WithBreakpoint(width float64) NavigatorOption {
	return func(n *Navigator) {
		n.breakpoint = width
	}
}

// WithThreshold sets the active-heading line and the jump offset.
func WithThreshold(offset float64) NavigatorOption {
	return func(n *Navigator) {
		n.threshold = offset
	}
}

// Navigator tracks which heading the reader is in and whether the panel is
// shown. Units are whatever the host measures in: pixels in a browser,
// lines in a terminal.
//
// A Navigator is not safe for concurrent use; drive it from the event loop
// that owns it.
type Navigator struct {
	headings   []Heading
	tops       []float64
	breakpoint float64
	threshold  float64

	sized  bool
	mode   Mode
	open   bool
	active string
}

// NewNavigator returns a navigator over headings. Until the first Resize it
// behaves as wide.
func NewNavigator(headings []Heading, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		headings:   headings,
		breakpoint: DefaultBreakpoint,
		threshold:  DefaultThreshold,
		mode:       ModeWide,
		open:       true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Headings returns the entries the navigator lists.
func (n *Navigator) Headings() []Heading { return n.headings }

// Empty reports whether there is nothing to list.
func (n *Navigator) Empty() bool { return len(n.headings) == 0 }

// Mode returns the current presentation.
func (n *Navigator) Mode() Mode { return n.mode }

// Open reports whether the panel is open. Always true in wide mode.
func (n *Navigator) Open() bool { return n.open }

// Active returns the id of the current heading, or "" above the first one.
func (n *Navigator) Active() string { return n.active }

// Visible reports whether the panel should be drawn at all.
func (n *Navigator) Visible() bool {
	return !n.Empty() && n.open
}

// Resize re-evaluates the mode for a new viewport width. Entering wide pins
// the panel open; entering narrow closes it.
func (n *Navigator) Resize(width float64) {
	mode := ModeNarrow
	if width >= n.breakpoint {
		mode = ModeWide
	}
	if n.sized && mode == n.mode {
		return
	}
	n.sized = true
	n.mode = mode
	n.open = mode == ModeWide
}

// SetAnchors records the document offset of each heading's anchor, in
// heading order. Headings past the end of tops have no anchor.
func (n *Navigator) SetAnchors(tops []float64) {
	n.tops = append(n.tops[:0], tops...)
}

// Scroll recomputes the active heading for a scroll position: the last
// heading whose anchor sits at or above the threshold line.
func (n *Navigator) Scroll(scrollY float64) string {
	active := ""
	for i, h := range n.headings {
		if i >= len(n.tops) {
			break
		}
		if n.tops[i]-scrollY <= n.threshold {
			active = h.ID
		}
	}
	n.active = active
	return active
}

// Target returns the scroll position that puts the first anchor with id
// threshold units below the viewport top.
func (n *Navigator) Target(id string) (float64, bool) {
	for i, h := range n.headings {
		if i >= len(n.tops) {
			break
		}
		if h.ID != id {
			continue
		}
		y := n.tops[i] - n.threshold
		if y < 0 {
			y = 0
		}
		return y, true
	}
	return 0, false
}

// Select handles a click on an entry: it returns the scroll target and, in
// narrow mode, closes the panel.
func (n *Navigator) Select(id string) (float64, bool) {
	y, ok := n.Target(id)
	if !ok {
		return 0, false
	}
	if n.mode == ModeNarrow {
		n.open = false
	}
	return y, true
}

// Toggle opens or closes the slide-over. It does nothing in wide mode.
func (n *Navigator) Toggle() {
	if n.mode == ModeNarrow {
		n.open = !n.open
	}
}

// Attach subscribes n to v and applies v's current size and scroll
// position. The returned func unsubscribes; call it when the owner goes away.
func (n *Navigator) Attach(v *Viewport) (detach func()) {
	w, _ := v.Size()
	n.Resize(w)
	n.Scroll(v.ScrollY())
	return v.Subscribe(func(ev ViewportEvent) {
		switch ev.Kind {
		case EventResize:
			n.Resize(ev.Width)
		case EventScroll:
			n.Scroll(ev.ScrollY)
		}
	})
}
