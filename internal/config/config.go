package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration, populated from environment
// variables (optionally loaded from a .env file).
type Config struct {
	// Fathom API
	FathomAPIKey      string        `envconfig:"FATHOM_API_KEY"`
	FathomAPIURL      string        `envconfig:"FATHOM_API_URL" default:"https://api.fathom.ai/external/v1"`
	PageSize          int           `envconfig:"FATHOM_PAGE_SIZE" default:"100"`
	MinRequestSpacing time.Duration `envconfig:"FATHOM_MIN_REQUEST_SPACING" default:"3s"`

	// Google Drive
	DriveFolderID string `envconfig:"GOOGLE_DRIVE_FOLDER_ID"`

	// Google Sheets
	SheetID    string `envconfig:"GOOGLE_SHEET_ID"`
	SheetRange string `envconfig:"GOOGLE_SHEET_RANGE" default:"Sheet1!A:B"`

	// Scheduler
	SyncInterval time.Duration `envconfig:"SYNC_INTERVAL" default:"30m"`

	// Local state
	StateFile string `envconfig:"STATE_FILE" default:"data/state.json"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Metrics endpoint for the serve command. Empty disables the listener.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// Validate checks for configuration problems that make startup pointless.
// A missing or placeholder Fathom API key is fatal; everything else has a
// usable default.
func (c *Config) Validate() error {
	if c.FathomAPIKey == "" {
		return fmt.Errorf("FATHOM_API_KEY is not set")
	}
	if strings.Contains(c.FathomAPIKey, "your_") {
		return fmt.Errorf("FATHOM_API_KEY is a placeholder value")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("FATHOM_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive, got %s", c.SyncInterval)
	}
	return nil
}
