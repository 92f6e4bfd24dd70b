package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string        `env:"BOT_TOKEN,required,notEmpty"`
	DatabaseURL string        `env:"DATABASE_URL,required,notEmpty"`
	PollTimeout time.Duration `env:"POLL_TIMEOUT" envDefault:"10s"`

	// Calendar days for confirmations and streaks are computed in this zone
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`

	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Reminders ReminderConfig
	Database  DatabaseConfig

	// Empty disables the metrics endpoint
	MetricsAddr string `env:"METRICS_ADDR"`

	location *time.Location
}

// ReminderConfig holds daily reminder settings
type ReminderConfig struct {
	Enabled  bool   `env:"REMINDERS_ENABLED" envDefault:"true"`
	Schedule string `env:"REMINDER_SCHEDULE" envDefault:"0 9 * * *"`
}

// DatabaseConfig holds connection pool settings
type DatabaseConfig struct {
	MaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return cfg, nil
}

// Location returns the resolved TIMEZONE, UTC if unset
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
