package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prtracker/prtracker/internal/config"
)

const testConfigContent = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "prtracker_dev"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
login_rate_limit_allowed_per_min = 15
strava_api_base_url = "https://www.strava.com/api/v3"
strava_auth_base_url = "https://www.strava.com"
strava_sync_page_size = 30

[production]
host = ""
port = 9000
log_level = "debug"
logs_path = "/var/log/prtracker/service.log"
sentry_enabled = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "prtracker"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"
login_rate_limit_allowed_per_min = 15
strava_api_base_url = "https://www.strava.com/api/v3"
strava_auth_base_url = "https://www.strava.com"
strava_sync_page_size = 30
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := config.Load("development", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.False(t, cfg.SentryEnabled)
	assert.Equal(t, "prtracker_dev", cfg.PostgresDBName)
	assert.Equal(t, 30, cfg.StravaSyncPageSize)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := config.Load("prod", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, "/var/log/prtracker/service.log", cfg.LogsPath)
	assert.Equal(t, "prtracker", cfg.PostgresDBName)
}

func TestLoad_UnknownEnv(t *testing.T) {
	_, err := config.Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown env")
}
