package toc

import (
	"regexp"
	"strings"
)

// Heading is one section marker of an article.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

var reHeading = regexp.MustCompile(`^(#{1,6})[ \t]+(.+?)[ \t]*$`)

type extractConfig struct {
	unique bool
}

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

// WithUniqueIDs makes Extract disambiguate colliding ids. The renderer must
// be configured the same way or anchors stop matching.
func WithUniqueIDs() ExtractOption {
	return func(c *extractConfig) {
		c.unique = true
	}
}

// Extract returns the anchored headings of md in document order. See
// ParseHeading for which lines count.
func Extract(md string, opts ...ExtractOption) []Heading {
	var cfg extractConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	slugger := &Slugger{Unique: cfg.unique}

	var (
		headings []Heading
		fence    string
	)
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")
		if marker, info, ok := fenceMarker(line); ok {
			switch {
			case fence == "":
				fence = marker
				continue
			case marker[0] == fence[0] && len(marker) >= len(fence) && info == "":
				fence = ""
				continue
			}
		}
		if fence != "" {
			continue
		}
		level, text, ok := ParseHeading(line)
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			ID:    slugger.Slug(text),
			Text:  text,
			Level: level,
		})
	}
	return headings
}

// ParseHeading reports whether line is a heading that gets an anchor: a
// column-0 ATX heading whose text slugifies to a non-empty id. Setext
// headings and headings nested in quotes or lists never match. The renderer
// assigns ids with the same rule so both sides count the same headings.
func ParseHeading(line string) (level int, text string, ok bool) {
	m := reHeading.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return 0, "", false
	}
	text = trimClosingHashes(m[2])
	if Slugify(text) == "" {
		return 0, "", false
	}
	return len(m[1]), text, true
}

// fenceMarker reports the backtick or tilde run that starts line and the
// info string after it, if line is a code fence.
func fenceMarker(line string) (marker, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return "", "", false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return "", "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return "", "", false
	}
	return trimmed[:n], strings.TrimSpace(trimmed[n:]), true
}

// trimClosingHashes drops an optional ATX closing sequence ("## Title ##").
func trimClosingHashes(text string) string {
	stripped := strings.TrimRight(text, "#")
	if stripped == text {
		return text
	}
	if stripped == "" {
		return ""
	}
	if last := stripped[len(stripped)-1]; last == ' ' || last == '\t' {
		return strings.TrimRight(stripped, " \t")
	}
	return text
}
