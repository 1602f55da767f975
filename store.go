package devblog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eringen/devblog/content"
	_ "modernc.org/sqlite"
)

// ErrInvalidName is returned when a category or filename cannot be stored.
var ErrInvalidName = errors.New("devblog: invalid category or filename")

// Store wraps a SQLite database holding the article tree: one row per
// markdown file, keyed by category and filename.
type Store struct {
	db *sql.DB
}

// CategoryStat summarises one category of the article tree.
type CategoryStat struct {
	Name    string
	Files   int
	Bytes   int64
	Updated time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the origin handlers read while an import writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    category TEXT NOT NULL,
    filename TEXT NOT NULL,
    content TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (category, filename)
);
`)
	return err
}

func validName(category, filename string) error {
	if category == "" || category != strings.ToLower(category) || strings.ContainsAny(category, "/\\") ||
		filename == "" || strings.ContainsAny(filename, "/\\") || !strings.HasSuffix(filename, ".md") {
		return fmt.Errorf("%w: %q/%q", ErrInvalidName, category, filename)
	}
	return nil
}

// ListFiles returns the filenames of a category in byte order, the order
// the index generator uses.
func (s *Store) ListFiles(category string) ([]string, error) {
	rows, err := s.db.Query(`SELECT filename FROM posts WHERE category = ? ORDER BY filename`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		files = append(files, name)
	}
	return files, rows.Err()
}

// ReadFile returns one article's markdown. A missing row yields an error
// matching content.ErrNotFound.
func (s *Store) ReadFile(category, filename string) (string, error) {
	var body string
	err := s.db.QueryRow(`SELECT content FROM posts WHERE category = ? AND filename = ?`, category, filename).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("store: %s/%s: %w", category, filename, content.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return body, nil
}

// SaveFile upserts an article.
func (s *Store) SaveFile(category, filename, body string) error {
	if err := validName(category, filename); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO posts (category, filename, content, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(category, filename) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		category, filename, body, time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeleteFile removes an article. Deleting a missing article is not an error.
func (s *Store) DeleteFile(category, filename string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE category = ? AND filename = ?`, category, filename)
	return err
}

// ListCategories returns per-category file counts and sizes ordered by name.
func (s *Store) ListCategories() ([]CategoryStat, error) {
	rows, err := s.db.Query(`SELECT category, COUNT(*), SUM(LENGTH(CAST(content AS BLOB))), MAX(updated_at)
FROM posts GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []CategoryStat
	for rows.Next() {
		var st CategoryStat
		var updated string
		if err := rows.Scan(&st.Name, &st.Files, &st.Bytes, &updated); err != nil {
			return nil, err
		}
		st.Updated, _ = time.Parse(time.RFC3339, updated)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// ImportDir copies every category directory under root into the store.
// onFile, if set, is called after each file with the running count.
func (s *Store) ImportDir(root string, onFile func(done, total int, category, filename string)) (int, error) {
	type ref struct{ dir, category, filename string }
	var refs []ref
	cats, err := content.Categories(root)
	if err != nil {
		return 0, err
	}
	for _, cat := range cats {
		files, err := content.GenerateIndex(filepath.Join(root, cat))
		if err != nil {
			return 0, err
		}
		for _, f := range files {
			refs = append(refs, ref{cat, strings.ToLower(cat), f})
		}
	}

	for i, r := range refs {
		data, err := os.ReadFile(filepath.Join(root, r.dir, r.filename))
		if err != nil {
			return i, fmt.Errorf("import %s/%s: %w", r.category, r.filename, err)
		}
		if err := s.SaveFile(r.category, r.filename, string(data)); err != nil {
			return i, fmt.Errorf("import %s/%s: %w", r.category, r.filename, err)
		}
		if onFile != nil {
			onFile(i+1, len(refs), r.category, r.filename)
		}
	}
	return len(refs), nil
}

// StoreFetcher serves the article tree out of a Store. index.json is
// synthesized from the stored filenames; a category without files has no
// index, like a missing directory.
type StoreFetcher struct {
	Store *Store
}

// Fetch implements content.Fetcher.
func (f StoreFetcher) Fetch(ctx context.Context, category, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == content.IndexFile {
		files, err := f.Store.ListFiles(category)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("store: %s/%s: %w", category, name, content.ErrNotFound)
		}
		return content.EncodeIndex(files)
	}
	body, err := f.Store.ReadFile(category, name)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}
