package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 0.1, cfg.Diff.Threshold)
	assert.Equal(t, "[name].diff.png", cfg.Diff.Pattern)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 3306, cfg.Database.Port)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("STORAGE_ACCESS_KEY", "minio")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("DIFF_THRESHOLD", "0.25")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "minio", cfg.Storage.AccessKey)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 0.25, cfg.Diff.Threshold)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9999\nDIFF_PATTERN=[name]-delta.png\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("DIFF_PATTERN")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "[name]-delta.png", cfg.Diff.Pattern)
}
