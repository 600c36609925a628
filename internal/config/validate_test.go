package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	cfg := &Config{OMDB: OMDBConfig{APIKey: "test-key"}}
	cfg.applyDefaults()
	return cfg
}

func TestValidate_MinimalValid(t *testing.T) {
	errs := validConfig().Validate()
	assert.Empty(t, errs, "expected no errors for minimal valid config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing api key", func(c *Config) { c.OMDB.APIKey = "" }, "omdb.api_key"},
		{"relative base url", func(c *Config) { c.OMDB.BaseURL = "omdbapi.com" }, "omdb.base_url"},
		{"negative timeout", func(c *Config) { c.OMDB.Timeout = -time.Second }, "omdb.timeout"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Minute }, "cache.ttl"},
		{"negative debounce", func(c *Config) { c.Search.Debounce = -1 }, "search.debounce"},
		{"negative page size", func(c *Config) { c.Search.PageSize = -10 }, "search.page_size"},
		{"too many suggestions", func(c *Config) {
			c.Search.Suggestions = []string{"Alien"}
			c.Search.SuggestionCount = 2
		}, "search.suggestion_count"},
		{"negative grid columns", func(c *Config) { c.UI.GridColumns = -2 }, "ui.grid_columns"},
		{"invalid log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			errs := cfg.Validate()
			assert.True(t, containsError(errs, tt.want), "expected %s error, got %v", tt.want, errs)
		})
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "DEBUG"
	assert.Empty(t, cfg.Validate())
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
