package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/vmunix/cinesearch/internal/cache"
	"github.com/vmunix/cinesearch/internal/config"
	"github.com/vmunix/cinesearch/internal/logging"
	"github.com/vmunix/cinesearch/internal/search"
	"github.com/vmunix/cinesearch/pkg/omdb"
	"golang.org/x/term"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "cinesearch",
	Short: "Search movies from the terminal",
	Long: `cinesearch - search movies from the terminal

Queries the OMDb API for movies. Without a subcommand it opens the
interactive search screen when attached to a terminal.

An API key is read from the config file or the OMDB_API_KEY
environment variable.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return runBrowse(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cinesearch {{.Version}}\n")
}

// app holds what the commands share once configuration is loaded.
type app struct {
	cfg *config.Config
	log *slog.Logger
	svc *search.Service
}

// loadApp resolves configuration and wires the client and service with a
// text logger on stderr.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, path, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}

	log := logging.New(cmd.ErrOrStderr(), effectiveLogLevel(cfg))
	if path != "" {
		log.Debug("loaded config", "path", path)
	}
	return newApp(cfg, log), nil
}

func newApp(cfg *config.Config, log *slog.Logger) *app {
	client := omdb.NewClient(cfg.OMDB.APIKey,
		omdb.WithBaseURL(cfg.OMDB.BaseURL),
		omdb.WithHTTPClient(&http.Client{Timeout: cfg.OMDB.Timeout}),
		omdb.WithCache(cache.New(cfg.Cache.TTL)),
		omdb.WithLogger(log),
	)

	return &app{
		cfg: cfg,
		log: log,
		svc: search.NewService(client, cfg.SearchOptions(), log),
	}
}

// effectiveLogLevel prefers --log-level over the config file
func effectiveLogLevel(cfg *config.Config) string {
	if logLevel != "" {
		return logLevel
	}
	return cfg.Log.Level
}
