package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/devblog"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	debug   bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "devblog",
	Short: "A markdown developer blog with a scroll-synced table of contents",
	Long: `devblog serves a category-partitioned collection of markdown articles.

It acts both as the content origin (/posts/{category}/index.json and the
articles themselves) and as the site that lists and renders them. The same
articles can be read in the terminal with "devblog read".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config = zap.NewDevelopmentConfig()
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", devblog.EnvOr("DEVBLOG_CONFIG", "devblog.yaml"), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "development logging")
}

func loadConfig() (devblog.SiteConfig, error) {
	cfg, err := devblog.LoadConfig(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
