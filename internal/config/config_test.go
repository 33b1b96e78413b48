package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, []string{"openai", "gemini", "claude"}, cfg.AI.Preference)
	assert.Equal(t, 2, cfg.AI.RetryAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay())
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 50000, cfg.AI.MaxContentChars)
	assert.Equal(t, 2000, cfg.AI.MaxOutputTokens)
	assert.InDelta(t, 0.7, float64(cfg.AI.Temperature), 0.001)
	assert.Equal(t, 24*time.Hour, cfg.CostWindow())
	assert.Equal(t, 60*time.Minute, cfg.CacheTTL())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: lens
  password: secret
  name: contentlens
ai:
  preference: [claude]
  retryAttempts: 3
  openai:
    apiKey: file-key
costs:
  windowHours: 6
  limits:
    openai: 100000
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"claude"}, cfg.AI.Preference)
	assert.Equal(t, 3, cfg.AI.RetryAttempts)
	assert.Equal(t, "file-key", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, 6*time.Hour, cfg.CostWindow())
	assert.Equal(t, int64(100000), cfg.Costs.Limits["openai"])
}

func TestEnvFallbackForAPIKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("ANTHROPIC_API_KEY", "env-claude")

	cfg, err := Load(writeConfig(t, "ai:\n  openai:\n    apiKey: file-wins\n"))
	require.NoError(t, err)

	assert.Equal(t, "file-wins", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, "env-gemini", cfg.AI.Gemini.APIKey)
	assert.Equal(t, "env-claude", cfg.AI.Claude.APIKey)
}

func TestDSNHelpers(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
database:
  host: localhost
  port: 3306
  user: root
  password: pw
  name: lens
`))
	require.NoError(t, err)

	assert.Equal(t, "root:pw@tcp(localhost:3306)/lens?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
	assert.Equal(t, "host=localhost port=3306 user=root password=pw dbname=lens sslmode=disable", cfg.PostgresDSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
