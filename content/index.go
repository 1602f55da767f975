package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// ArticlePattern matches the files listed in a category index.
const ArticlePattern = "*.md"

// GenerateIndex returns the sorted article filenames in dir.
func GenerateIndex(dir string) ([]string, error) {
	files, err := doublestar.Glob(os.DirFS(dir), ArticlePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("content: list %s: %w", dir, err)
	}
	sort.Strings(files)
	if files == nil {
		files = []string{}
	}
	return files, nil
}

// EncodeIndex renders a manifest the way index.json files are stored.
func EncodeIndex(files []string) ([]byte, error) {
	if files == nil {
		files = []string{}
	}
	return json.MarshalIndent(files, "", "  ")
}

// WriteIndex regenerates dir/index.json and returns the listed files.
func WriteIndex(dir string) ([]string, error) {
	files, err := GenerateIndex(dir)
	if err != nil {
		return nil, err
	}
	data, err := EncodeIndex(files)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, IndexFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("content: write index: %w", err)
	}
	return files, nil
}

// Categories returns the names of the category directories under root.
func Categories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var cats []string
	for _, e := range entries {
		if e.IsDir() {
			cats = append(cats, e.Name())
		}
	}
	return cats, nil
}

// WriteIndexes regenerates the index of each category under root and returns
// the number of files listed per category. Missing category directories are
// skipped; a category that fails is logged and the rest still run.
func WriteIndexes(root string, categories []string, log *zap.Logger) map[string]int {
	if log == nil {
		log = zap.NewNop()
	}
	counts := make(map[string]int)
	for _, cat := range categories {
		dir := filepath.Join(root, cat)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			log.Info("category directory does not exist, skipping", zap.String("dir", dir))
			continue
		}
		files, err := WriteIndex(dir)
		if err != nil {
			log.Error("failed to generate index", zap.String("category", cat), zap.Error(err))
			continue
		}
		counts[cat] = len(files)
		log.Info("generated index",
			zap.String("category", cat),
			zap.Int("files", len(files)),
			zap.Strings("names", files))
	}
	return counts
}
