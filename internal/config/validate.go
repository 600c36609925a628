package config

import (
	"fmt"
	"net/url"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// OMDb
	if c.OMDB.APIKey == "" {
		errs = append(errs, fmt.Sprintf("omdb.api_key: required (or set %s)", APIKeyEnv))
	}
	if c.OMDB.BaseURL != "" {
		u, err := url.Parse(c.OMDB.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("omdb.base_url: must be an absolute URL, got %q", c.OMDB.BaseURL))
		}
	}
	errs = appendPositive(errs, "omdb.timeout", c.OMDB.Timeout)

	// Cache and search timing
	errs = appendPositive(errs, "cache.ttl", c.Cache.TTL)
	errs = appendPositive(errs, "search.debounce", c.Search.Debounce)

	if c.Search.PageSize < 0 {
		errs = append(errs, fmt.Sprintf("search.page_size: must be positive, got %d", c.Search.PageSize))
	}
	if n := c.Search.SuggestionCount; n < 0 || (len(c.Search.Suggestions) > 0 && n > len(c.Search.Suggestions)) {
		errs = append(errs, fmt.Sprintf("search.suggestion_count: must be between 1 and %d, got %d", len(c.Search.Suggestions), n))
	}

	if c.UI.GridColumns < 0 {
		errs = append(errs, fmt.Sprintf("ui.grid_columns: must be 0 (auto) or positive, got %d", c.UI.GridColumns))
	}

	if !validLogLevels[trimLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}

func appendPositive(errs []string, field string, d time.Duration) []string {
	if d < 0 {
		return append(errs, fmt.Sprintf("%s: must be positive, got %s", field, d))
	}
	return errs
}
