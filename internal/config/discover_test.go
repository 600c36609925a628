package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")
	require.NoError(t, os.Chdir(dir), "failed to change directory")
	t.Cleanup(func() {
		assert.NoError(t, os.Chdir(origDir), "failed to restore working directory")
	})
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, filepath.Join(".config", "cinesearch", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path := DefaultPath()
	assert.Equal(t, "/custom/config/cinesearch/config.toml", path)
}

func TestDiscover_EnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[omdb]"), 0644))

	t.Setenv(PathEnv, cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvOverrideNotFound(t *testing.T) {
	t.Setenv(PathEnv, "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), PathEnv)
	assert.False(t, IsNotFound(err), "an explicit path that is missing is not a discovery miss")
}

func TestDiscover_CurrentDir(t *testing.T) {
	t.Setenv(PathEnv, "")

	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "config.toml"), []byte("[omdb]"), 0644))
	chdir(t, tmp)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "config.toml", filepath.Base(path))
}

func TestDiscover_XDG(t *testing.T) {
	t.Setenv(PathEnv, "")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	chdir(t, t.TempDir())

	require.NoError(t, WriteDefault(filepath.Join(xdg, "cinesearch", "config.toml")))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "cinesearch", "config.toml"), path)
}

func TestDiscover_NotFound(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	chdir(t, t.TempDir())

	_, err := Discover()
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "config not found")
}

func TestResolve_FallsBackToDefaults(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	t.Setenv(APIKeyEnv, "env-key")
	chdir(t, t.TempDir())

	cfg, path, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "env-key", cfg.OMDB.APIKey)
}

func TestResolve_DefaultsWithoutKey(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	t.Setenv(APIKeyEnv, "")
	chdir(t, t.TempDir())

	_, _, err := Resolve("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "omdb.api_key")

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "built-in defaults", cfgErr.Source())
}

func TestResolve_ExplicitPath(t *testing.T) {
	cfgPath := writeConfig(t, `
[omdb]
api_key = "explicit"
`)

	cfg, path, err := Resolve(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
	assert.Equal(t, "explicit", cfg.OMDB.APIKey)
}
