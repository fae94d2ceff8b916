package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("OPERATION_TIMEOUT", "")
	t.Setenv("NUMBERING_MAX_ATTEMPTS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 10*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 3, cfg.NumberingMaxAttempts)
	assert.Equal(t, 25*time.Millisecond, cfg.NumberingBackoff)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("OPERATION_TIMEOUT", "3s")
	t.Setenv("NUMBERING_MAX_ATTEMPTS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/ledger.db", cfg.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 5, cfg.NumberingMaxAttempts)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("OPERATION_TIMEOUT", "soon")
	t.Setenv("NUMBERING_MAX_ATTEMPTS", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 10*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 3, cfg.NumberingMaxAttempts)
}
