package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FATHOM_API_KEY", "fk_live_abc123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.fathom.ai/external/v1", cfg.FathomAPIURL)
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.MinRequestSpacing)
	assert.Equal(t, "Sheet1!A:B", cfg.SheetRange)
	assert.Equal(t, 30*time.Minute, cfg.SyncInterval)
	assert.Equal(t, "data/state.json", cfg.StateFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FATHOM_API_KEY", "fk_live_abc123")
	t.Setenv("SYNC_INTERVAL", "5m")
	t.Setenv("FATHOM_PAGE_SIZE", "25")
	t.Setenv("FATHOM_MIN_REQUEST_SPACING", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.MinRequestSpacing)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.FathomAPIKey = "" },
			wantErr: true,
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.FathomAPIKey = "your_api_key_here" },
			wantErr: true,
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.PageSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative interval",
			mutate:  func(c *Config) { c.SyncInterval = -time.Minute },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				FathomAPIKey: "fk_live_abc123",
				PageSize:     100,
				SyncInterval: 30 * time.Minute,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
