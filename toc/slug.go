// Package toc extracts headings from markdown articles and models the
// table-of-contents panel that follows the reader's scroll position.
//
// Slugify is the single source of heading anchor ids. The markdown renderer
// and the navigator both go through it, so a TOC link and the heading it
// points at always carry the same id.
package toc

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify converts heading text to an anchor id.
//
// The text is lower-cased, every rune other than ASCII letters, digits,
// underscore, CJK unified ideographs, whitespace and hyphens is dropped,
// whitespace and hyphen runs collapse to a single hyphen, and hyphens are
// trimmed from both ends.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	hyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			hyphen = true
		case keepRune(r):
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r >= 0x4e00 && r <= 0x9fff:
		return true
	}
	return false
}

// Slugger hands out heading ids for one document.
//
// With Unique unset every id is plain Slugify output and repeated headings
// share an anchor. With Unique set, later collisions get a numeric suffix
// (install, install-1, install-2). A Slugger must not be reused across
// documents.
type Slugger struct {
	Unique bool

	seen map[string]int
}

// Slug returns the id for text and records it.
func (s *Slugger) Slug(text string) string {
	id := Slugify(text)
	if !s.Unique {
		return id
	}
	if s.seen == nil {
		s.seen = make(map[string]int)
	}
	n, taken := s.seen[id]
	if !taken {
		s.seen[id] = 0
		return id
	}
	for {
		n++
		candidate := id + "-" + strconv.Itoa(n)
		if _, used := s.seen[candidate]; !used {
			s.seen[id] = n
			s.seen[candidate] = 0
			return candidate
		}
	}
}
