package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Data.SourcePath)
	assert.Equal(t, 5, cfg.Data.SuggestionLimit)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
}

func TestLoadConfigFile_ReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nLOG_LEVEL=debug\nSUGGESTION_LIMIT=3\nCACHE_ENABLED=true\nCACHE_TTL=30s\nREDIS_HOST=cache\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Data.SuggestionLimit)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "cache", cfg.Redis.Host)
}

func TestLoadConfigFile_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\n"), 0o600))
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfigFile_RejectsInvalidValues(t *testing.T) {
	t.Setenv("SUGGESTION_LIMIT", "0")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUGGESTION_LIMIT")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoadConfigFile_SuggestionLimitCappedAtFive(t *testing.T) {
	t.Setenv("SUGGESTION_LIMIT", "6")

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUGGESTION_LIMIT")

	t.Setenv("SUGGESTION_LIMIT", "5")
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Data.SuggestionLimit)
}
