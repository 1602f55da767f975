package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/devblog/content"
)

var (
	indexRoot  string
	indexWatch bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Regenerate index.json for every category directory",
	Long: `Lists the .md files of each category directory under the posts root and
writes them, sorted, to the category's index.json. With --watch the indexes
are kept current as articles are added, removed or renamed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := indexRoot
		if root == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			root = cfg.PostsDir
		}

		cats, err := content.Categories(root)
		if err != nil {
			return fmt.Errorf("reading %s: %w", root, err)
		}
		counts := content.WriteIndexes(root, cats, logger.Named("index"))
		fmt.Fprintf(os.Stderr, "Regenerated %d of %d indexes under %s\n", len(counts), len(cats), root)
		if !indexWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("watching for changes", zap.String("root", root))
		return content.WatchIndexes(ctx, root, logger.Named("watch"), nil)
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexRoot, "root", "", "posts root (default: posts_dir from config)")
	indexCmd.Flags().BoolVar(&indexWatch, "watch", false, "keep indexes current until interrupted")
	rootCmd.AddCommand(indexCmd)
}
