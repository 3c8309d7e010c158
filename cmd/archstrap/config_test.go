package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	config, err := parseConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8700", config.ListenAddress)
	assert.Equal(t, "/usr/share/zoneinfo", config.ZoneinfoDir)
	assert.Equal(t, "info", config.LogLevel)
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archstrap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_address = ":9000"
log_level = "debug"
`), 0600))

	config, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", config.ListenAddress)
	assert.Equal(t, "debug", config.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, "/usr/share/zoneinfo", config.ZoneinfoDir)
}

func TestParseConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archstrap.toml")
	require.NoError(t, os.WriteFile(path, []byte("listen_address = [\n"), 0600))

	_, err := parseConfig(path)
	assert.Error(t, err)
}
