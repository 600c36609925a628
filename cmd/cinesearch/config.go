package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/cinesearch/internal/config"
)

var (
	configForce     bool
	configEffective bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without contacting the API.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Long: `Write an example configuration file.

Without a path the file goes to $XDG_CONFIG_HOME/cinesearch/config.toml.
The example reads the API key from OMDB_API_KEY. With --effective the
currently resolved settings are written instead, API key included.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long:  "Print the configuration after discovery, environment substitution and defaults. The API key is masked.",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configEffective, "effective", false, "Write the resolved settings instead of the example")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil && !config.IsNotFound(err) {
			return err
		}
		path = found
	}

	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		fmt.Fprintln(w, "No config file found, validating built-in defaults...")
		fmt.Fprintln(w)
		cfg = config.Default()
		if errs := cfg.Validate(); len(errs) > 0 {
			err = &config.ConfigError{Errors: errs}
		}
	} else {
		fmt.Fprintf(w, "Validating %s...\n\n", path)
		cfg, err = config.Load(path)
	}

	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(w, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(w, cfg)
	fmt.Fprintln(w, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	fmt.Fprintf(w, "Problems in %s:\n\n", e.Source())

	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  API:         %s (key %s, timeout %s)\n", cfg.OMDB.BaseURL, maskKey(cfg.OMDB.APIKey), cfg.OMDB.Timeout)
	fmt.Fprintf(w, "  Cache TTL:   %s\n", cfg.Cache.TTL)
	fmt.Fprintf(w, "  Debounce:    %s\n", cfg.Search.Debounce)
	fmt.Fprintf(w, "  Page size:   %d\n", cfg.Search.PageSize)

	titles := cfg.Search.Suggestions
	if n := cfg.Search.SuggestionCount; n < len(titles) {
		titles = titles[:n]
	}
	fmt.Fprintf(w, "  Suggestions: %s\n", strings.Join(titles, ", "))

	columns := "auto"
	if cfg.UI.GridColumns > 0 {
		columns = fmt.Sprintf("%d", cfg.UI.GridColumns)
	}
	fmt.Fprintf(w, "  Grid:        %s columns\n", columns)

	logTarget := "disabled for the search screen"
	if cfg.Log.File != "" {
		logTarget = cfg.Log.File
	}
	fmt.Fprintf(w, "  Log:         %s (%s)\n", cfg.Log.Level, logTarget)
}

// maskKey shows only the last four characters of a secret
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	w := cmd.OutOrStdout()
	if configEffective {
		cfg, _, err := config.Resolve(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Write(path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(w, "Wrote effective settings to %s\n", path)
		return nil
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	if os.Getenv(config.APIKeyEnv) == "" {
		fmt.Fprintf(w, "Set %s or edit omdb.api_key before searching.\n", config.APIKeyEnv)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	masked := *cfg
	masked.OMDB.APIKey = maskKey(cfg.OMDB.APIKey)

	w := cmd.OutOrStdout()
	source := path
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(w, "# effective configuration from %s\n", source)
	return masked.Encode(w)
}
