package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/cinesearch/internal/config"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

func TestSearchCmd_Table(t *testing.T) {
	srv := newMockServer(t).Handler(omdbHandler(t)).Build()
	cfg := writeTestConfig(t, srv.URL)

	out, _, err := runCLI(t, "--config", cfg, "search", "Batman")
	require.NoError(t, err)

	assert.Contains(t, out, `Found 25 results for "Batman" (showing 10):`)
	assert.Contains(t, out, "Batman 0")
	assert.Contains(t, out, "tt0000009")
	assert.NotContains(t, out, "Batman 10")
	assert.Contains(t, out, "More results available: --pages 2")
}

func TestSearchCmd_PagesJSON(t *testing.T) {
	mock := newMockServer(t).Handler(omdbHandler(t))
	srv := mock.Build()
	cfg := writeTestConfig(t, srv.URL)

	out, _, err := runCLI(t, "--config", cfg, "--json", "search", "Batman", "--pages", "5")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Batman", got.Query)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 25, got.Total)
	assert.False(t, got.HasMore)
	assert.Len(t, got.Results, 25, "pages are merged without duplicates")
	assert.Equal(t, 3, mock.Calls(), "stops once the API has no more pages")
}

func TestSearchCmd_SinglePage(t *testing.T) {
	srv := newMockServer(t).Handler(omdbHandler(t)).Build()
	cfg := writeTestConfig(t, srv.URL)

	out, _, err := runCLI(t, "--config", cfg, "--json", "search", "Batman", "--page", "3")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Page)
	assert.Len(t, got.Results, 5)
	assert.Equal(t, "tt0000020", got.Results[0].IMDbID)
	assert.False(t, got.HasMore)
}

func TestSearchCmd_SortYear(t *testing.T) {
	srv := newMockServer(t).Handler(omdbHandler(t)).Build()
	cfg := writeTestConfig(t, srv.URL)

	out, _, err := runCLI(t, "--config", cfg, "--json", "search", "Batman", "--sort", "year")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.Results)
	assert.Equal(t, "tt0000009", got.Results[0].IMDbID, "newest first")
}

func TestSearchCmd_NotFound(t *testing.T) {
	srv := newMockServer(t).Handler(omdbHandler(t)).Build()
	cfg := writeTestConfig(t, srv.URL)

	_, stderr, err := runCLI(t, "--config", cfg, "search", "Btman")
	require.Error(t, err)
	assert.Equal(t, "Movie not found!", err.Error())
	assert.Contains(t, stderr, `Did you mean "Batman"?`)
}

func TestSearchCmd_HTTPError(t *testing.T) {
	srv := newMockServer(t).RespondStatus(500).Build()
	cfg := writeTestConfig(t, srv.URL)

	_, _, err := runCLI(t, "--config", cfg, "search", "alien")
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 500", err.Error())
}

func TestSearchCmd_InvalidFlags(t *testing.T) {
	mock := newMockServer(t).Handler(omdbHandler(t))
	srv := mock.Build()
	cfg := writeTestConfig(t, srv.URL)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad sort", []string{"--sort", "rating"}, "rating"},
		{"zero page", []string{"--page", "0"}, "at least 1"},
		{"page and pages", []string{"--page", "2", "--pages", "2"}, "cannot be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfg, "search", "alien"}, tt.args...)
			_, _, err := runCLI(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
	assert.Zero(t, mock.Calls(), "flags are checked before any request")
}

func TestDetailsCmd(t *testing.T) {
	srv := newMockServer(t).Handler(omdbHandler(t)).Build()
	cfg := writeTestConfig(t, srv.URL)

	t.Run("text", func(t *testing.T) {
		out, _, err := runCLI(t, "--config", cfg, "details", "tt1375666")
		require.NoError(t, err)
		assert.Contains(t, out, "Inception")
		assert.Contains(t, out, "Christopher Nolan")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := runCLI(t, "--config", cfg, "--json", "details", "tt1375666")
		require.NoError(t, err)

		var got omdb.Details
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "tt1375666", got.IMDbID)
		assert.Equal(t, "2010", got.Year)
	})
}

func TestSuggestionsCmd(t *testing.T) {
	mock := newMockServer(t).Handler(omdbHandler(t))
	srv := mock.Build()
	cfg := writeTestConfig(t, srv.URL)

	out, _, err := runCLI(t, "--config", cfg, "suggestions")
	require.NoError(t, err)

	assert.Contains(t, out, "Popular movies (Batman, Avengers, Spider-Man, Superman, Iron Man, The Dark Knight):")
	assert.Contains(t, out, "Batman 0")
	assert.Contains(t, out, "tt-Avengers")
	assert.Equal(t, 6, mock.Calls())
}

func TestSuggestionsCmd_AllFail(t *testing.T) {
	srv := newMockServer(t).RespondStatus(503).Build()
	cfg := writeTestConfig(t, srv.URL)

	out, _, err := runCLI(t, "--config", cfg, "suggestions")
	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions could be loaded")
}

func TestConfigTestCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := writeTestConfig(t, "http://localhost:1")

		out, _, err := runCLI(t, "config", "test", cfg)
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration Summary:")
		assert.Contains(t, out, "****-key")
		assert.NotContains(t, out, testAPIKey)
		assert.Contains(t, out, "Configuration valid!")
	})

	t.Run("missing env var", func(t *testing.T) {
		t.Setenv("CINESEARCH_TEST_UNSET", "")
		require.NoError(t, os.Unsetenv("CINESEARCH_TEST_UNSET"))
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[omdb]
api_key = "${CINESEARCH_TEST_UNSET}"
`), 0644))

		out, _, err := runCLI(t, "--config", path, "config", "test")
		require.Error(t, err)
		assert.Equal(t, "configuration invalid", err.Error())
		assert.Contains(t, out, "Problems in "+path)
		assert.Contains(t, out, "Missing environment variables:")
		assert.Contains(t, out, "CINESEARCH_TEST_UNSET")
	})

	t.Run("validation errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[omdb]
api_key = "abc"
base_url = "not a url"
`), 0644))

		out, _, err := runCLI(t, "config", "test", path)
		require.Error(t, err)
		assert.Contains(t, out, "Validation errors:")
		assert.Contains(t, out, "base_url")
	})
}

func TestConfigInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, _, err = runCLI(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCLI(t, "config", "init", path, "--force")
	require.NoError(t, err)
}

func TestConfigInitCmd_Effective(t *testing.T) {
	cfg := writeTestConfig(t, "http://localhost:1")
	path := filepath.Join(t.TempDir(), "effective.toml")

	out, _, err := runCLI(t, "--config", cfg, "config", "init", path, "--effective")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote effective settings to "+path)

	written, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, testAPIKey, written.OMDB.APIKey)
	assert.Equal(t, "http://localhost:1/", written.OMDB.BaseURL)
	assert.Equal(t, "error", written.Log.Level)
	assert.Equal(t, 10, written.Search.PageSize, "defaults are written out")
}

func TestConfigShowCmd(t *testing.T) {
	cfg := writeTestConfig(t, "http://localhost:1")

	out, _, err := runCLI(t, "--config", cfg, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "# effective configuration from "+cfg)
	assert.Contains(t, out, `api_key = "****-key"`)
	assert.NotContains(t, out, testAPIKey)
	assert.Contains(t, out, `timeout = "5s"`)
	assert.Contains(t, out, `base_url = "http://localhost:1/"`)
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcd", "****"},
		{"abcdef12", "****ef12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, maskKey(tt.key), "maskKey(%q)", tt.key)
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 result", pluralize(1, "result"))
	assert.Equal(t, "0 results", pluralize(0, "result"))
	assert.Equal(t, "25 results", pluralize(25, "result"))
}
