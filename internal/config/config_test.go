package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, float64(50_000_000), cfg.Ingest.MinCapexUSD)
	assert.Equal(t, 200, cfg.Ingest.MinJobs)
	assert.Equal(t, 7, cfg.Ingest.MaxAgeYears)
	assert.Equal(t, 1.5, cfg.Impact.ScoreCeiling)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PROPAI_STORE_DRIVER", "sqlite")
	t.Setenv("PROPAI_STORE_DATABASE_URL", "catalysts.db")
	t.Setenv("PROPAI_INGEST_MIN_JOBS", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "catalysts.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 500, cfg.Ingest.MinJobs)
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}
