// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIURL)
	assert.Equal(t, "https://api.github.com", cfg.GithubAPIURL)
	assert.Equal(t, "file://migrations", cfg.MigrationsURL)
	assert.Equal(t, 60*time.Minute, cfg.SyncInterval)
	assert.False(t, cfg.SyncSingleFlight)
	assert.Empty(t, cfg.GithubToken)
}

func TestLoadConfig_Environment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_URL", "postgres://user:pw@localhost:5432/repos")
	t.Setenv("GITHUB_API_URL", "http://ghe.local/api/v3/")
	t.Setenv("GITHUB_TOKEN", "secret")
	t.Setenv("SYNC_INTERVAL", "15m")
	t.Setenv("SYNC_SINGLE_FLIGHT", "true")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://user:pw@localhost:5432/repos", cfg.DBURL)
	assert.Equal(t, "http://ghe.local/api/v3", cfg.GithubAPIURL)
	assert.Equal(t, "secret", cfg.GithubToken)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.True(t, cfg.SyncSingleFlight)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	content := "DB_URL=postgres://from-file\nGITHUB_TOKEN=file-token\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Setenv("GITHUB_TOKEN", "env-token")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "postgres://from-file", cfg.DBURL)
	assert.Equal(t, "env-token", cfg.GithubToken, "environment overrides .env")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{DBURL: "postgres://x", GithubAPIURL: "https://api.github.com", Port: 3000, SyncInterval: time.Hour}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing db url", func(c *Config) { c.DBURL = "" }},
		{"missing github url", func(c *Config) { c.GithubAPIURL = "" }},
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"non-positive interval", func(c *Config) { c.SyncInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
