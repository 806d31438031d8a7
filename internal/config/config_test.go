package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, DefaultDebounceMillis, cfg.UISettings.DebounceMillis)
	assert.True(t, cfg.UISettings.ShowSuggestions)
}

func TestDebounce_Fallback(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())

	cfg.UISettings.DebounceMillis = -5
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())

	cfg.UISettings.DebounceMillis = 150
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dinegrip.toml")

	cfg := Default()
	cfg.CatalogPath = "menu.toml"
	cfg.UISettings.DebounceMillis = 200
	require.NoError(t, SaveToPath(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromPath_Missing(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadFromPath_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = [[["), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dinegrip.toml")

	cfg := LoadOrCreate(path)
	assert.Equal(t, Default(), cfg)

	// The file should now exist and load back to the same config.
	_, err := os.Stat(path)
	require.NoError(t, err)
	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadOrCreate_PrefersExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dinegrip.toml")
	existing := Default()
	existing.UISettings.DebounceMillis = 42
	require.NoError(t, SaveToPath(existing, path))

	cfg := LoadOrCreate(path)
	assert.Equal(t, 42, cfg.UISettings.DebounceMillis)
}
