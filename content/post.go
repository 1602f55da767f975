// Package content loads the markdown articles of a blog category.
//
// Each category directory holds .md files and an index.json manifest that
// lists them. The Loader reads the manifest through a Fetcher, fetches every
// listed article concurrently and derives a title and a short description
// for the article list. Failures are absorbed: a missing manifest falls back
// to a compiled-in file list, and articles that cannot be fetched are left
// out.
package content

import "strings"

// NoDescription is used when an article has no plain text line to show.
const NoDescription = "No description available"

// Post is one loaded article.
type Post struct {
	Category    string `json:"category"`
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Slug is the article's path segment on the site: the filename without its
// extension.
func (p Post) Slug() string {
	return strings.TrimSuffix(p.Filename, ".md")
}

// TitleFromFilename derives a display title from a manifest entry:
// "React_Basics.md" becomes "React Basics".
func TitleFromFilename(filename string) string {
	return strings.ReplaceAll(strings.Replace(filename, ".md", "", 1), "_", " ")
}

// TitleFromContent derives a display title from the first line of an
// article, dropping the "# " heading marker.
func TitleFromContent(body string) string {
	first, _, _ := strings.Cut(body, "\n")
	first = strings.TrimRight(first, "\r")
	return strings.TrimSpace(strings.Replace(first, "# ", "", 1))
}

// DescriptionFromContent returns the first line that is not blank, not a
// heading and not a code fence, or NoDescription.
func DescriptionFromContent(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") {
			continue
		}
		return line
	}
	return NoDescription
}
