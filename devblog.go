// Package devblog serves a category-partitioned collection of markdown
// articles. It is both the content origin (/posts/{category}/index.json and
// the article files) and the site that renders them (/blogs/...), with a
// scroll-synced table of contents on every article.
//
// The article tree lives either in a directory or in a SQLite store; the
// admin area regenerates indexes and imports the directory into the store.
package devblog

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/markdown"
	"github.com/eringen/devblog/toc"
)

// App is the central devblog application. It wires together the content
// origin, the post loader, the renderer, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Loader   *content.Loader
	Renderer *markdown.Renderer
	Views    ViewFuncs
	Log      *zap.Logger

	origin       content.Fetcher
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		Log:       zap.NewNop(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the store and builds the loader, middleware and routes
// without listening. Start calls it; tests call it and drive a.Echo
// directly.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("devblog: init store: %w", err)
	}
	a.Store = store

	if a.Config.Source == SourceStore {
		a.origin = StoreFetcher{Store: store}
	} else {
		a.origin = content.FSFetcher{FS: os.DirFS(a.Config.PostsDir)}
	}

	// The loader reads the local origin in-process unless a remote one is
	// configured.
	var fetcher content.Fetcher = a.origin
	if a.Config.ContentURL != "" {
		fetcher = content.NewHTTPFetcher(a.Config.ContentURL, a.Config.FetchTimeout)
	}
	a.Loader = content.NewLoader(fetcher,
		content.WithLogger(a.Log.Named("loader")),
		content.WithConcurrency(a.Config.FetchConcurrency),
	)

	var mdOpts []markdown.Option
	if a.Config.UniqueHeadingIDs {
		mdOpts = append(mdOpts, markdown.WithUniqueIDs())
	}
	a.Renderer = markdown.New(mdOpts...)

	if a.Config.AdminEnabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.Info("listening",
		zap.String("addr", a.Config.Addr),
		zap.String("source", a.Config.Source),
		zap.Bool("admin", a.Config.AdminEnabled()))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/toc.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Content origin
	e.GET("/posts/:category/:file", a.handleOrigin)

	// Site
	e.GET("/", handleRootRedirect)
	e.GET("/blogs", handleRootRedirect)
	e.GET("/blogs/", a.handleBlogs)
	e.GET("/blogs/:category/", a.handleCategory)
	e.GET("/blogs/:category/feed.xml", a.handleFeed)
	e.GET("/blogs/:category/:file/", a.handlePost)

	if a.Config.AdminEnabled() {
		a.setupAdminRoutes()
	}
}

// tocOptions returns the extractor options matching the renderer's id
// scheme.
func (a *App) tocOptions() []toc.ExtractOption {
	if a.Config.UniqueHeadingIDs {
		return []toc.ExtractOption{toc.WithUniqueIDs()}
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
