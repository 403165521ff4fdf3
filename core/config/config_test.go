package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hjson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHJSONWithComments(t *testing.T) {
	path := writeConfig(t, `{
  // local test instance
  api_base_url: http://localhost:8000/api
  default_product: Thunderbird
  default_days: 14
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, "Thunderbird", cfg.DefaultProduct)
	assert.Equal(t, 14, cfg.DefaultDays)
	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultCorrelationsBaseURL, cfg.CorrelationsBaseURL)
}

func TestLoadEmptyFileGetsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadInvalidSyntax(t *testing.T) {
	_, err := Load(writeConfig(t, `{ api_base_url: [unterminated`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hjson"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "https://crash-stats.mozilla.org/api", cfg.APIBaseURL)
	assert.Equal(t, "Firefox", cfg.DefaultProduct)
	assert.Equal(t, 7, cfg.DefaultDays)
}
