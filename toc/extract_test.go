package toc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractLevelsInDocumentOrder(t *testing.T) {
	got := Extract("# H1\n## H2 Two\ntext\n### H3")
	want := []Heading{
		{ID: "h1", Text: "H1", Level: 1},
		{ID: "h2-two", Text: "H2 Two", Level: 2},
		{ID: "h3", Text: "H3", Level: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Heading
	}{
		{
			name:  "all six levels",
			input: "# a\n## b\n### c\n#### d\n##### e\n###### f",
			want: []Heading{
				{ID: "a", Text: "a", Level: 1},
				{ID: "b", Text: "b", Level: 2},
				{ID: "c", Text: "c", Level: 3},
				{ID: "d", Text: "d", Level: 4},
				{ID: "e", Text: "e", Level: 5},
				{ID: "f", Text: "f", Level: 6},
			},
		},
		{
			name:  "seven hashes is not a heading",
			input: "####### too deep",
		},
		{
			name:  "hash without space is not a heading",
			input: "#hashtag\n#\n",
		},
		{
			name:  "closing sequence dropped",
			input: "## Usage ##\n# C#",
			want: []Heading{
				{ID: "usage", Text: "Usage", Level: 2},
				{ID: "c", Text: "C#", Level: 1},
			},
		},
		{
			name:  "crlf line endings",
			input: "# One\r\n## Two\r\n",
			want: []Heading{
				{ID: "one", Text: "One", Level: 1},
				{ID: "two", Text: "Two", Level: 2},
			},
		},
		{
			name:  "fenced code is skipped",
			input: "# Setup\n```bash\n# install deps\nconda create -n env\n```\n## Next\n~~~\n# not me\n~~~",
			want: []Heading{
				{ID: "setup", Text: "Setup", Level: 1},
				{ID: "next", Text: "Next", Level: 2},
			},
		},
		{
			name:  "duplicates share an id",
			input: "## Install\n## Install",
			want: []Heading{
				{ID: "install", Text: "Install", Level: 2},
				{ID: "install", Text: "Install", Level: 2},
			},
		},
		{
			name:  "cjk text",
			input: "# 数据库 入门",
			want: []Heading{
				{ID: "数据库-入门", Text: "数据库 入门", Level: 1},
			},
		},
		{
			name:  "setext quoted and listed headings are not listed",
			input: "Setup\n=====\n\n> ## Setup\n\n- ## Setup\n\n   ## Indented\n\n## Setup",
			want: []Heading{
				{ID: "setup", Text: "Setup", Level: 2},
			},
		},
		{
			name:  "heading without an id is skipped",
			input: "# !!!\n## Next",
			want: []Heading{
				{ID: "next", Text: "Next", Level: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestExtractUniqueIDs(t *testing.T) {
	got := Extract("## Install\n## Install\n## Install", WithUniqueIDs())
	ids := make([]string, len(got))
	for i, h := range got {
		ids[i] = h.ID
	}
	want := []string{"install", "install-1", "install-2"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractIDsMatchSlugify(t *testing.T) {
	for _, h := range Extract("# Getting Started!\n## Step 2: Configure `env`") {
		if h.ID != Slugify(h.Text) {
			t.Errorf("heading %q has id %q, Slugify gives %q", h.Text, h.ID, Slugify(h.Text))
		}
	}
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
		ok    bool
	}{
		{"## Usage ##", 2, "Usage", true},
		{"# One\r", 1, "One", true},
		{"# !!!", 0, "", false},
		{"> # Quoted", 0, "", false},
		{" # Indented", 0, "", false},
		{"Plain text", 0, "", false},
	}
	for _, tt := range tests {
		level, text, ok := ParseHeading(tt.line)
		if level != tt.level || text != tt.text || ok != tt.ok {
			t.Errorf("ParseHeading(%q) = (%d, %q, %v), want (%d, %q, %v)",
				tt.line, level, text, ok, tt.level, tt.text, tt.ok)
		}
	}
}
