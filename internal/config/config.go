package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hlzx-cpu/VEX-rankings/internal/rating"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// RobotEvents API
	RobotEventsToken   string        `envconfig:"ROBOTEVENTS_TOKEN"`
	RobotEventsBaseURL string        `envconfig:"ROBOTEVENTS_BASE_URL" default:"https://www.robotevents.com/api/v2"`
	HTTPTimeout        time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	MaxAttempts        int           `envconfig:"MAX_ATTEMPTS" default:"8"`
	PerPage            int           `envconfig:"PER_PAGE" default:"250"`

	// The upstream limiter allows roughly one request per second;
	// RequestInterval is the proactive pause after each success.
	RequestInterval  time.Duration `envconfig:"REQUEST_INTERVAL" default:"2s"`
	CooldownInterval time.Duration `envconfig:"COOLDOWN_INTERVAL" default:"30s"`

	// Season selection
	ProgramID  int `envconfig:"PROGRAM_ID" default:"4"` // VEX U
	SeasonYear int `envconfig:"SEASON_YEAR" default:"2025"`

	// Rating engine
	BaseRating float64 `envconfig:"BASE_RATING" default:"1500"`
	KFactor    float64 `envconfig:"K_FACTOR" default:"32"`
	RescaleMin float64 `envconfig:"RESCALE_MIN" default:"0.30"`
	RescaleMax float64 `envconfig:"RESCALE_MAX" default:"0.80"`

	// Published artifacts
	SnapshotPath string `envconfig:"SNAPSHOT_PATH" default:"dashboard_data.csv"`
	RankingsDir  string `envconfig:"RANKINGS_DIR" default:"rankings"`

	// Redis (optional response cache; empty host disables it)
	RedisHost     string        `envconfig:"REDIS_HOST" default:""`
	RedisPort     int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	// Dashboard
	DashboardAddr string        `envconfig:"DASHBOARD_ADDR" default:":8050"`
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Monitoring
	MetricsPort int `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration. The API token is checked by
// the fetcher, not here, so the dashboard can run from a snapshot
// without RobotEvents credentials.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1")
	}

	if c.PerPage < 1 {
		return fmt.Errorf("PER_PAGE must be at least 1")
	}

	if c.KFactor <= 0 {
		return fmt.Errorf("K_FACTOR must be positive")
	}

	if c.RescaleMax <= c.RescaleMin {
		return fmt.Errorf("RESCALE_MAX must be greater than RESCALE_MIN")
	}

	return nil
}

// EngineConfig returns the rating engine parameters
func (c *Config) EngineConfig() rating.Config {
	return rating.Config{
		BaseRating: c.BaseRating,
		KFactor:    c.KFactor,
		RescaleMin: c.RescaleMin,
		RescaleMax: c.RescaleMax,
	}
}

// CacheEnabled returns true when a Redis host is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
