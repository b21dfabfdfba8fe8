package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  url: postgres://file/db
jwt:
  secret: from-file
  expiry_hours: 2
planner:
  titles: ["A", "B"]
  seed: 99
redis:
  context_ttl: 1m
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/db", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry())
	assert.Equal(t, []string{"A", "B"}, cfg.Planner.Titles)
	assert.Equal(t, uint64(99), cfg.Planner.Seed)
	assert.Equal(t, time.Minute, cfg.Redis.ContextTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("SEED_CATALOG", "true")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.Database.URL)
	assert.True(t, cfg.App.SeedCatalog)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "x")

	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL not set")

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "eighty")
	_, err = Load()
	assert.Error(t, err)
}
