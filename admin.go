package devblog

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/views"
)

func (a *App) setupAdminRoutes() {
	g := a.Echo.Group("/admin", a.adminMiddleware()...)
	g.GET("/", a.handleAdmin)
	g.POST("/login/", a.handleAdminLogin)
	g.POST("/logout/", handleAdminLogout)
	g.POST("/reindex/", a.handleAdminReindex)
	g.POST("/import/", a.handleAdminImport)
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.viewConfig(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Log.Warn("failed admin login", zap.String("ip", ip))
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.viewConfig(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminReindex regenerates index.json for every category directory
// under PostsDir.
func (a *App) handleAdminReindex(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	cats, err := content.Categories(a.Config.PostsDir)
	if err != nil {
		return a.renderAdminDashboard(c, fmt.Sprintf("Cannot read %s: %v", a.Config.PostsDir, err))
	}
	counts := content.WriteIndexes(a.Config.PostsDir, cats, a.Log.Named("index"))
	return a.renderAdminDashboard(c, fmt.Sprintf("Regenerated %d of %d indexes.", len(counts), len(cats)))
}

// handleAdminImport copies PostsDir into the SQLite store.
func (a *App) handleAdminImport(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	n, err := a.Store.ImportDir(a.Config.PostsDir, nil)
	if err != nil {
		a.Log.Error("import failed", zap.String("dir", a.Config.PostsDir), zap.Int("imported", n), zap.Error(err))
		return a.renderAdminDashboard(c, fmt.Sprintf("Import stopped after %d files: %v", n, err))
	}
	a.Log.Info("imported articles", zap.String("dir", a.Config.PostsDir), zap.Int("files", n))
	return a.renderAdminDashboard(c, fmt.Sprintf("Imported %d articles.", n))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	stats, err := a.categoryStats()
	if err != nil {
		return err
	}
	rows := make([]views.CategoryStat, len(stats))
	for i, st := range stats {
		rows[i] = views.CategoryStat(st)
	}
	return Render(c, a.Views.AdminDashboard(a.viewConfig(), a.Config.Source, rows, msg, CsrfToken(c)))
}

// categoryStats summarises whichever source the origin serves.
func (a *App) categoryStats() ([]CategoryStat, error) {
	if a.Config.Source == SourceStore {
		return a.Store.ListCategories()
	}
	return dirStats(a.Config.PostsDir)
}

func dirStats(root string) ([]CategoryStat, error) {
	cats, err := content.Categories(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats []CategoryStat
	for _, cat := range cats {
		files, err := content.GenerateIndex(filepath.Join(root, cat))
		if err != nil {
			return nil, err
		}
		st := CategoryStat{Name: cat, Files: len(files)}
		for _, f := range files {
			fi, err := os.Stat(filepath.Join(root, cat, f))
			if err != nil {
				continue
			}
			st.Bytes += fi.Size()
			if mod := fi.ModTime(); mod.After(st.Updated) {
				st.Updated = mod.UTC().Truncate(time.Second)
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}
