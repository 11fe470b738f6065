package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
api:
  port: ":9000"
  jwtSecret: "from-file"
database:
  host: "127.0.0.1"
  port: "3306"
  name: "market"
reconcile:
  batchSize: 25
`

func writeConfig(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yml"), []byte(testConfig), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad(t *testing.T) {
	writeConfig(t)
	t.Setenv("MARKET_DATABASE_HOST", "db.internal")
	t.Setenv("MARKET_API_JWTSECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.API.Port)
	assert.Equal(t, "from-env", cfg.API.JWTSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Reconcile.BatchSize)

	assert.Equal(t, 3, cfg.Database.MaxRetries)
	assert.Equal(t, 20, cfg.API.RateLimit.Burst)
	assert.Equal(t, 3*time.Minute, cfg.API.RateLimit.IdleTTL)
	assert.Equal(t, "points.reconcile", cfg.Reconcile.Queue)
	assert.Equal(t, 30*time.Second, cfg.Reconcile.Interval)
}

func TestLoad_DotEnv(t *testing.T) {
	writeConfig(t)
	require.NoError(t, os.WriteFile(".env", []byte("MARKET_DATABASE_NAME=from_dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MARKET_DATABASE_NAME") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.Database.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := Load()
	assert.Error(t, err)
}
