package reader

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/eringen/devblog/toc"
)

var inlineMarkers = strings.NewReplacer("**", "", "__", "", "`", "", "*", "")

// anchorLines finds the line each heading was rendered on. Headings are
// matched in document order, each search starting below the previous match,
// so repeated titles map to successive lines. A line that is exactly the
// heading (after its "#" prefix) wins over a line that merely contains it.
// A heading that cannot be found inherits the previous anchor, which keeps
// offsets non-decreasing.
func anchorLines(rendered string, headings []toc.Heading) []float64 {
	lines := strings.Split(ansi.Strip(rendered), "\n")
	tops := make([]float64, 0, len(headings))
	from, last := 0, 0
	for _, h := range headings {
		want := strings.TrimSpace(inlineMarkers.Replace(h.Text))
		if want == "" {
			tops = append(tops, float64(last))
			continue
		}
		found := findLine(lines, from, func(line string) bool {
			return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#")) == want
		})
		if found < 0 {
			found = findLine(lines, from, func(line string) bool {
				return strings.Contains(line, want)
			})
		}
		if found >= 0 {
			last = found
			from = found + 1
		}
		tops = append(tops, float64(last))
	}
	return tops
}

func findLine(lines []string, from int, match func(string) bool) int {
	for i := from; i < len(lines); i++ {
		if match(lines[i]) {
			return i
		}
	}
	return -1
}
