package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/godad/internal/control"
	"github.com/vietddude/godad/internal/core/config"
	"github.com/vietddude/stylelog"
)

var (
	cfgPath string
	baseURL string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "godad",
	Short: "GoDad platform client",
	Long:  `Command-line client for the GoDad community platform: articles, comments, notifications, follows, and points over its REST API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

// setup loads env and config, initializes logging, and wires the App.
// Every subcommand starts here.
func setup() (*control.App, *config.AppConfig) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	app, err := control.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize client", "error", err)
		os.Exit(1)
	}
	return app, cfg
}
