package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/devblog"
	"github.com/eringen/devblog/content"
	"github.com/eringen/devblog/reader"
)

var readStyle string

var readCmd = &cobra.Command{
	Use:   "read [category]",
	Short: "Read a category in the terminal",
	Long: `Opens a full-screen reader over one category. The article list comes from
the same origin the site uses: content_url when set, otherwise the store or
the posts directory, as selected by source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		category := ""
		if len(args) == 1 {
			category = strings.ToLower(strings.TrimSpace(args[0]))
		} else if len(cfg.Categories) > 0 {
			category = cfg.Categories[0].Name
		}
		if category == "" {
			return errors.New("no category given and none configured")
		}

		var f content.Fetcher
		switch {
		case cfg.ContentURL != "":
			f = content.NewHTTPFetcher(cfg.ContentURL, cfg.FetchTimeout)
		case cfg.Source == devblog.SourceStore:
			store, err := devblog.NewStore(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer store.Close()
			f = devblog.StoreFetcher{Store: store}
		default:
			f = content.FSFetcher{FS: os.DirFS(cfg.PostsDir)}
		}

		// Log lines tear the full-screen view, so they are only kept with --debug.
		log := zap.NewNop()
		if debug {
			log = logger
		}
		loader := content.NewLoader(f,
			content.WithLogger(log.Named("loader")),
			content.WithConcurrency(cfg.FetchConcurrency),
		)

		opts := []reader.Option{reader.WithStyle(readStyle), reader.WithLogger(log.Named("reader"))}
		if cfg.UniqueHeadingIDs {
			opts = append(opts, reader.WithUniqueIDs())
		}
		return reader.Run(cmd.Context(), loader, category, opts...)
	},
}

func init() {
	readCmd.Flags().StringVar(&readStyle, "style", "dark", `glamour style ("dark", "light", "notty", ...)`)
	rootCmd.AddCommand(readCmd)
}
