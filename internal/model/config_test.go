package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
	assert.NotEmpty(t, cfg.Storage.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		API: APIConfig{
			BaseURL:    "https://lms.school.edu/api/v1",
			SocketURL:  "wss://lms.school.edu/socket",
			TimeoutSec: 15,
		},
		Storage: StorageConfig{DBPath: "/tmp/archive.db"},
		Log:     LogConfig{Path: "/tmp/console.log", Level: "debug"},
		Display: DisplayConfig{Theme: "default"},
	}

	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want.API, got.API)
	assert.Equal(t, want.Storage, got.Storage)
	assert.Equal(t, want.Log, got.Log)
}
