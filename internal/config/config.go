// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vmunix/cinesearch/internal/cache"
	"github.com/vmunix/cinesearch/internal/search"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

// APIKeyEnv is consulted when the config file leaves omdb.api_key empty.
const APIKeyEnv = "OMDB_API_KEY"

// DefaultDebounce is the quiet period before a typed query is searched.
const DefaultDebounce = 300 * time.Millisecond

// Config is the root configuration structure.
type Config struct {
	OMDB   OMDBConfig   `toml:"omdb"`
	Cache  CacheConfig  `toml:"cache"`
	Search SearchConfig `toml:"search"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

type OMDBConfig struct {
	APIKey  string        `toml:"api_key"`
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

type CacheConfig struct {
	TTL time.Duration `toml:"ttl"`
}

type SearchConfig struct {
	Debounce        time.Duration `toml:"debounce"`
	PageSize        int           `toml:"page_size"`
	Suggestions     []string      `toml:"suggestions"`
	SuggestionCount int           `toml:"suggestion_count"`
}

// UIConfig tunes the interactive screen. GridColumns of 0 sizes the grid
// to the terminal width.
type UIConfig struct {
	GridColumns int `toml:"grid_columns"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, substitutes, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping Validate.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OMDB.APIKey == "" {
		c.OMDB.APIKey = os.Getenv(APIKeyEnv)
	}
	if c.OMDB.BaseURL == "" {
		c.OMDB.BaseURL = omdb.DefaultBaseURL
	}
	if c.OMDB.Timeout == 0 {
		c.OMDB.Timeout = omdb.DefaultTimeout
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = cache.DefaultTTL
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = DefaultDebounce
	}
	if c.Search.PageSize == 0 {
		c.Search.PageSize = search.DefaultPageSize
	}
	if len(c.Search.Suggestions) == 0 {
		c.Search.Suggestions = append([]string(nil), search.DefaultSuggestionTitles...)
	}
	if c.Search.SuggestionCount == 0 {
		c.Search.SuggestionCount = min(search.DefaultSuggestionCount, len(c.Search.Suggestions))
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// SearchOptions maps the search section onto service options.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		PageSize:        c.Search.PageSize,
		Titles:          c.Search.Suggestions,
		SuggestionCount: c.Search.SuggestionCount,
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references in content. Unset
// variables without a default are left in place and reported in missing;
// for ${VAR:?message} the report is "VAR: message". Empty values count as
// unset for the :- and :? forms.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, op, arg := groups[1], groups[2], groups[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}

// IsNotFound reports whether err came from Discover finding no file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
