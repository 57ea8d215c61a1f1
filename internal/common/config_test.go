package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zapply.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "local", config.Storage.Mode)
	assert.Equal(t, 25, config.Scraper.Concurrency)
	assert.Equal(t, 200, config.Scraper.BatchSize)
	assert.Equal(t, 60, config.Scraper.MaxAgeDays)
	assert.Equal(t, 120, config.Scraper.EOIMaxAgeDays)
	assert.Equal(t, 30*time.Second, config.Scraper.RequestTimeout)
	assert.NotEmpty(t, config.Scraper.KeywordsRegex)
	assert.NotEmpty(t, config.Scraper.NegativeKeywordsRegex)

	require.NoError(t, config.Validate())
}

func TestLoadFromFilesOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
environment = "production"

[scraper]
concurrency = 5
batch_size = 50

[storage]
mode = "local"

[storage.sqlite]
path = "/tmp/test.db"
`)

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 5, config.Scraper.Concurrency)
	assert.Equal(t, 50, config.Scraper.BatchSize)
	assert.Equal(t, "/tmp/test.db", config.Storage.SQLite.Path)
	// Untouched settings keep their defaults.
	assert.Equal(t, "slugs.json", config.Scraper.SlugsFile)
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	first := writeConfigFile(t, "[scraper]\nconcurrency = 5\nbatch_size = 50\n")
	second := writeConfigFile(t, "[scraper]\nconcurrency = 10\n")

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)

	assert.Equal(t, 10, config.Scraper.Concurrency)
	assert.Equal(t, 50, config.Scraper.BatchSize)
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/zapply.toml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ZAPPLY_ENV", "production")
	t.Setenv("CONCURRENCY", "3")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acct")
	t.Setenv("ZAPPLY_LOG_LEVEL", "debug")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 3, config.Scraper.Concurrency)
	assert.Equal(t, "acct", config.Storage.D1.AccountID)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, true, "outcomes.log", true, "0 * * * *")

	assert.Equal(t, "remote", config.Storage.Mode)
	assert.Equal(t, "outcomes.log", config.Logging.LogFile)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "0 * * * *", config.Schedule)
}

func TestValidateRemoteRequiresCredentials(t *testing.T) {
	config := NewDefaultConfig()
	config.Storage.Mode = "remote"

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLOUDFLARE_ACCOUNT_ID")

	config.Storage.D1.AccountID = "acct"
	config.Storage.D1.DatabaseID = "db"
	config.Storage.D1.APIToken = "token"
	assert.NoError(t, config.Validate())
}

func TestValidateRejectsBadMode(t *testing.T) {
	config := NewDefaultConfig()
	config.Storage.Mode = "postgres"
	assert.Error(t, config.Validate())
}

func TestValidateRejectsZeroConcurrency(t *testing.T) {
	config := NewDefaultConfig()
	config.Scraper.Concurrency = 0
	assert.Error(t, config.Validate())
}
