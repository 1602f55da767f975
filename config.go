package devblog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	yamlv3 "gopkg.in/yaml.v3"
)

// Content sources for the /posts origin.
const (
	SourceDir   = "dir"
	SourceStore = "store"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. DEVBLOG_ADMIN_PASSWORD sets admin_password.
const EnvPrefix = "DEVBLOG_"

// SiteConfig holds all configuration for a devblog site.
type SiteConfig struct {
	Name        string `koanf:"name" yaml:"name"`               // Site name (default "Developer Blogs")
	URL         string `koanf:"url" yaml:"url"`                 // Canonical URL (default "http://localhost:3000")
	Description string `koanf:"description" yaml:"description"` // Site description for RSS and meta tags
	Author      string `koanf:"author" yaml:"author,omitempty"` // Author name for JSON-LD

	Addr         string `koanf:"addr" yaml:"addr"`                   // Listen address (default ":3000")
	PostsDir     string `koanf:"posts_dir" yaml:"posts_dir"`         // Article tree (default "public/posts")
	DatabasePath string `koanf:"database_path" yaml:"database_path"` // SQLite path (default "data/devblog.db")
	Source       string `koanf:"source" yaml:"source"`               // "dir" or "store" (default "dir")
	ContentURL   string `koanf:"content_url" yaml:"content_url,omitempty"`

	UniqueHeadingIDs bool          `koanf:"unique_heading_ids" yaml:"unique_heading_ids"`
	FetchConcurrency int           `koanf:"fetch_concurrency" yaml:"fetch_concurrency"`
	FetchTimeout     time.Duration `koanf:"fetch_timeout" yaml:"fetch_timeout"`

	AdminPassword string `koanf:"admin_password" yaml:"admin_password,omitempty"` // Empty disables /admin
	SessionSecret string `koanf:"session_secret" yaml:"session_secret,omitempty"`
	CookieSecure  bool   `koanf:"cookie_secure" yaml:"cookie_secure"` // Set true for HTTPS

	Categories []CategoryConfig `koanf:"categories" yaml:"categories"`
}

// CategoryConfig is one entry of the /blogs catalog.
type CategoryConfig struct {
	Name        string `koanf:"name" yaml:"name"` // directory name, e.g. "databases"
	Title       string `koanf:"title" yaml:"title"`
	Description string `koanf:"description" yaml:"description"`
	Image       string `koanf:"image" yaml:"image,omitempty"`
}

// DefaultCategories is the catalog used when none is configured.
var DefaultCategories = []CategoryConfig{
	{
		Name:        "development_tools",
		Title:       "Development Tools",
		Description: "Discover the essential development tools that can boost your productivity and streamline your workflow. From code editors to version control systems, we cover everything you need.",
		Image:       "https://images.pexels.com/photos/1181298/pexels-photo-1181298.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
	},
	{
		Name:        "frontend_development",
		Title:       "Frontend Development",
		Description: "Learn about the latest trends and best practices in frontend development. Explore modern frameworks, responsive design techniques, and performance optimization strategies.",
		Image:       "https://images.pexels.com/photos/1261427/pexels-photo-1261427.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
	},
	{
		Name:        "backend_development",
		Title:       "Backend Development",
		Description: "Dive into server-side programming with our comprehensive guides on backend development. From RESTful APIs to database design, we cover the fundamentals and advanced topics.",
		Image:       "https://images.pexels.com/photos/2004161/pexels-photo-2004161.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
	},
	{
		Name:        "databases",
		Title:       "Databases",
		Description: "Explore different database systems and learn how to choose the right one for your project. We cover relational databases, NoSQL solutions, and data modeling techniques.",
		Image:       "https://images.pexels.com/photos/1148820/pexels-photo-1148820.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1",
	},
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Developer Blogs"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = "In-depth articles covering various aspects of software development."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsDir == "" {
		c.PostsDir = "public/posts"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/devblog.db"
	}
	if c.Source == "" {
		c.Source = SourceDir
	}
	if c.FetchConcurrency <= 0 {
		c.FetchConcurrency = 8
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]CategoryConfig(nil), DefaultCategories...)
	}
	for i := range c.Categories {
		c.Categories[i].Name = strings.ToLower(strings.TrimSpace(c.Categories[i].Name))
		if c.Categories[i].Title == "" {
			c.Categories[i].Title = categoryTitle(c.Categories[i].Name)
		}
	}
}

// Validate reports configuration values the server cannot run with.
func (c *SiteConfig) Validate() error {
	switch c.Source {
	case SourceDir, SourceStore:
	default:
		return fmt.Errorf("devblog: invalid source %q: must be %q or %q", c.Source, SourceDir, SourceStore)
	}
	if c.AdminPassword != "" && c.SessionSecret == "" {
		return fmt.Errorf("devblog: session_secret is required when admin_password is set")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" || strings.ContainsAny(cat.Name, "/\\") {
			return fmt.Errorf("devblog: invalid category name %q", cat.Name)
		}
	}
	return nil
}

// AdminEnabled reports whether the /admin routes are served.
func (c *SiteConfig) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// LoadConfig reads the YAML file at path, if it exists, then overlays
// DEVBLOG_* environment variables. Defaults fill whatever is left unset.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return SiteConfig{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return SiteConfig{}, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return SiteConfig{}, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg SiteConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c SiteConfig) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger for request logs, the loader and the admin
// actions. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}

// WithViews replaces the default page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
