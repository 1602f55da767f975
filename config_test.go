package devblog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "public/posts", cfg.PostsDir)
	assert.Equal(t, SourceDir, cfg.Source)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.AdminEnabled())
	require.Len(t, cfg.Categories, 4)
	assert.Equal(t, "development_tools", cfg.Categories[0].Name)
	assert.Equal(t, "Databases", cfg.Categories[3].Title)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devblog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Notes
url: https://notes.example.com
source: store
fetch_timeout: 3s
unique_heading_ids: true
categories:
  - name: Go_Lang
    description: All about Go
`), 0o644))
	t.Setenv("DEVBLOG_ADMIN_PASSWORD", "pw")
	t.Setenv("DEVBLOG_FETCH_CONCURRENCY", "3")
	t.Setenv("DEVBLOG_NAME", "Env Notes")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Env Notes", cfg.Name, "environment overrides the file")
	assert.Equal(t, "https://notes.example.com", cfg.URL)
	assert.Equal(t, SourceStore, cfg.Source)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3, cfg.FetchConcurrency)
	assert.True(t, cfg.UniqueHeadingIDs)
	assert.Equal(t, "pw", cfg.AdminPassword)
	require.Len(t, cfg.Categories, 1)
	assert.Equal(t, CategoryConfig{Name: "go_lang", Title: "go lang", Description: "All about Go"}, cfg.Categories[0])
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unterminated"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	cfg.Author = "Ada"
	cfg.FetchTimeout = 1500 * time.Millisecond

	path := filepath.Join(t.TempDir(), "devblog.yaml")
	require.NoError(t, cfg.Save(path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SiteConfig)
		wantErr bool
	}{
		{"defaults", func(*SiteConfig) {}, false},
		{"store source", func(c *SiteConfig) { c.Source = SourceStore }, false},
		{"unknown source", func(c *SiteConfig) { c.Source = "s3" }, true},
		{"admin without secret", func(c *SiteConfig) { c.AdminPassword = "pw" }, true},
		{"admin with secret", func(c *SiteConfig) { c.AdminPassword = "pw"; c.SessionSecret = "s" }, false},
		{"category with slash", func(c *SiteConfig) { c.Categories = []CategoryConfig{{Name: "a/b"}} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg SiteConfig
			cfg.setDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blogs"}, "https://example.com/blogs/"},
		{"https://example.com/sub/", []string{"blogs", "databases", "Redis_Intro"}, "https://example.com/sub/blogs/databases/Redis_Intro/"},
		{"https://example.com", []string{"blogs", "db", "a b"}, "https://example.com/blogs/db/a%20b/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<b>Fast</b> cache", "Fast cache"},
		{"plain", "plain"},
		{`<script>alert(1)</script>safe`, "safe"},
	}
	for _, tt := range tests {
		if got := plainText(tt.input); got != tt.expected {
			t.Errorf("plainText(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestETagMatch(t *testing.T) {
	tag := ETag([]byte("hello"))
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{tag, true},
		{"W/" + tag, true},
		{`"other", ` + tag, true},
		{"*", true},
		{`"other"`, false},
	}
	for _, tt := range tests {
		if got := etagMatch(tt.header, tag); got != tt.want {
			t.Errorf("etagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
