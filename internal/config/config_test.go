package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("HOLIDAY_SYNC_INTERVAL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, HolidaySourceDatabase, cfg.Holiday.Source)
	assert.Equal(t, time.Hour, cfg.Holiday.SyncInterval)
	assert.Equal(t, 31, cfg.Holiday.SyncWindow)
	assert.False(t, cfg.JWT.Enabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":            {"DB_DRIVER": "mysql"},
		"postgres without password": {"DB_DRIVER": "postgres", "DB_PASSWORD": ""},
		"auth without secret":       {"DB_DRIVER": "sqlite", "AUTH_ENABLED": "true"},
		"bad bool":                  {"DB_DRIVER": "sqlite", "AUTH_ENABLED": "maybe"},
		"bad holiday source":        {"DB_DRIVER": "sqlite", "HOLIDAY_SOURCE": "api"},
		"bad sync interval":         {"DB_DRIVER": "sqlite", "HOLIDAY_SYNC_INTERVAL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("DB_PASSWORD", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := &Config{App: AppConfig{LogLevel: "debug"}}
	assert.Equal(t, "DEBUG", cfg.SlogLevel().String())

	cfg.App.LogLevel = "nonsense"
	assert.Equal(t, "INFO", cfg.SlogLevel().String())
}

func TestGetEnvSlice(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvSlice("CORS_ALLOWED_ORIGINS"))
}
