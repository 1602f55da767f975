package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/devblog"
)

var importRoot string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy a posts directory into the SQLite content store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root := importRoot
		if root == "" {
			root = cfg.PostsDir
		}

		store, err := devblog.NewStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		var bar *progressbar.ProgressBar
		n, err := store.ImportDir(root, func(done, total int, category, filename string) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Importing"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			bar.Describe(category + "/" + filename)
			_ = bar.Set(done)
		})
		if bar != nil {
			_ = bar.Finish()
		}
		if err != nil {
			logger.Error("import failed", zap.String("root", root), zap.Int("imported", n), zap.Error(err))
			return fmt.Errorf("import stopped after %d files: %w", n, err)
		}
		fmt.Fprintf(os.Stderr, "Imported %d articles from %s into %s\n", n, root, cfg.DatabasePath)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importRoot, "root", "", "posts root (default: posts_dir from config)")
	rootCmd.AddCommand(importCmd)
}
