package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err, "Load should succeed with defaults")

	assert.Equal(t, "https://www.robotevents.com/api/v2", cfg.RobotEventsBaseURL)
	assert.Equal(t, 8, cfg.MaxAttempts)
	assert.Equal(t, 250, cfg.PerPage)
	assert.Equal(t, 2*time.Second, cfg.RequestInterval)
	assert.Equal(t, 30*time.Second, cfg.CooldownInterval)
	assert.Equal(t, 4, cfg.ProgramID)
	assert.Equal(t, 2025, cfg.SeasonYear)

	assert.Equal(t, 1500.0, cfg.BaseRating)
	assert.Equal(t, 32.0, cfg.KFactor)
	assert.Equal(t, 0.30, cfg.RescaleMin)
	assert.Equal(t, 0.80, cfg.RescaleMax)

	assert.Equal(t, "dashboard_data.csv", cfg.SnapshotPath)
	assert.Equal(t, "rankings", cfg.RankingsDir)
	assert.Equal(t, ":8050", cfg.DashboardAddr)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 9090, cfg.MetricsPort)

	assert.True(t, cfg.IsDevelopment(), "default environment should be development")
	assert.False(t, cfg.CacheEnabled(), "cache should be off without a Redis host")
}

func TestLoad_AllowsMissingToken(t *testing.T) {
	t.Setenv("ROBOTEVENTS_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err, "dashboard-only deployments run without a token")
	assert.Empty(t, cfg.RobotEventsToken)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ROBOTEVENTS_TOKEN", "test-token")
	t.Setenv("SEASON_YEAR", "2024")
	t.Setenv("K_FACTOR", "24")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("POLL_INTERVAL", "10s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err, "Load should succeed")

	assert.Equal(t, "test-token", cfg.RobotEventsToken)
	assert.Equal(t, 2024, cfg.SeasonYear)
	assert.Equal(t, 24.0, cfg.KFactor)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.True(t, cfg.CacheEnabled(), "cache should be on once a Redis host is set")
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero attempts", "MAX_ATTEMPTS", "0"},
		{"zero page size", "PER_PAGE", "0"},
		{"zero k-factor", "K_FACTOR", "0"},
		{"inverted rescale band", "RESCALE_MIN", "0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err, "Load should reject %s=%s", tt.key, tt.value)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestConfig_EngineConfig(t *testing.T) {
	cfg := &Config{
		BaseRating: 1500,
		KFactor:    32,
		RescaleMin: 0.30,
		RescaleMax: 0.80,
	}

	engine := cfg.EngineConfig()
	assert.Equal(t, 1500.0, engine.BaseRating)
	assert.Equal(t, 32.0, engine.KFactor)
	assert.Equal(t, 0.30, engine.RescaleMin)
	assert.Equal(t, 0.80, engine.RescaleMax)
}
