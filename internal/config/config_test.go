package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Report.RollingWindow)
	assert.Equal(t, []string{"Asia8", "Euro7"}, cfg.Report.RecognizedBenchmarks)
	assert.Empty(t, cfg.Report.ExcludedCountries)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "default config is valid",
			modify: func(c *Config) {},
		},
		{
			name:    "invalid port",
			modify:  func(c *Config) { c.Server.Port = -1 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero rolling window",
			modify:  func(c *Config) { c.Report.RollingWindow = 0 },
			wantErr: "rolling window",
		},
		{
			name:    "no recognized benchmarks",
			modify:  func(c *Config) { c.Report.RecognizedBenchmarks = nil },
			wantErr: "recognized benchmark",
		},
		{
			name:    "zero read timeout",
			modify:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "logs/idxstat.log", cfg.Logging.FilePath)
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := *Default()
	fileCfg.Server.Port = 9090
	fileCfg.Report.RollingWindow = 5
	fileCfg.Report.ExcludedCountries = []string{"Turkey"}

	// Env config with unset fields picks up file values
	envCfg := Config{}
	merged := mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, 9090, merged.Server.Port)
	assert.Equal(t, 5, merged.Report.RollingWindow)
	assert.Equal(t, []string{"Turkey"}, merged.Report.ExcludedCountries)

	// Env values win when set
	envCfg.Server.Port = 7070
	merged = mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, 7070, merged.Server.Port)
}
