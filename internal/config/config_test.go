package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "DATABASE_STRICT", "APP_ENV", "HOST", "PORT", "LOGGING_LEVEL", "STATIC_DIR"} {
		if value, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, value) })
		}
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
server:
  host: "127.0.0.1"
  port: 9090
  environment: "production"
  shutdown_timeout: "3s"

database:
  url: "postgres://monitor:secret@db:5432/monitor"
  strict: true
  max_open_conns: 4
  query_timeout: "1s"

api:
  stats_cache_ttl: "1m"
  rate_limit: 5
  rate_limit_burst: 10

web:
  static_dir: "/srv/dashboard"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.Server.GetShutdownTimeout())

	assert.Equal(t, "postgres://monitor:secret@db:5432/monitor", cfg.Database.URL)
	assert.True(t, cfg.Database.Strict)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Second, cfg.Database.GetQueryTimeout())

	assert.Equal(t, time.Minute, cfg.API.GetStatsCacheTTL())
	assert.Equal(t, 5.0, cfg.API.RateLimit)
	assert.Equal(t, 10, cfg.API.RateLimitBurst)

	assert.Equal(t, "/srv/dashboard", cfg.Web.StaticDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.Server.IsProduction())
	assert.False(t, cfg.Database.Strict)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.Database.GetConnectTimeout())
	assert.Equal(t, 30*time.Second, cfg.Database.GetConnMaxIdleTime())
	assert.Equal(t, 10*time.Second, cfg.API.GetStatsCacheTTL())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env@db/monitor")
	t.Setenv("DATABASE_STRICT", "true")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8081")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 9090\ndatabase:\n  url: \"postgres://file@db/monitor\"\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env@db/monitor", cfg.Database.URL)
	assert.True(t, cfg.Database.Strict)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.ErrorIs(t, cfg.Validate(), ErrConfigurationMissing)
}

func TestParseDuration_Fallback(t *testing.T) {
	assert.Equal(t, 7*time.Second, parseDuration("bogus", 7*time.Second))
	assert.Equal(t, 7*time.Second, parseDuration("", 7*time.Second))
	assert.Equal(t, time.Minute, parseDuration("1m", 7*time.Second))
}
