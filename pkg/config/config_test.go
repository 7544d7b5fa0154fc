package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, SourceDir, cfg.Source.Kind)
	assert.Equal(t, "../abstracts/", cfg.Source.Dir)
	assert.Equal(t, 1e-4, cfg.Ranker.Epsilon)
	assert.Equal(t, TieBreakIdentifier, cfg.Ranker.TieBreak)
	assert.Equal(t, LabelsLetters, cfg.Progress.Labels)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	// Given: a config file overriding a few fields
	path := filepath.Join(t.TempDir(), "ranker.yaml")
	data := `
source:
  dir: /srv/abstracts
ranker:
  tieBreak: insertion
retry:
  maxAttempts: 5
  initialDelay: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	// When: loading it
	cfg, err := Load(path)

	// Then: overridden fields change and the rest keep their defaults
	require.NoError(t, err)
	assert.Equal(t, "/srv/abstracts", cfg.Source.Dir)
	assert.Equal(t, SourceDir, cfg.Source.Kind)
	assert.Equal(t, TieBreakInsertion, cfg.Ranker.TieBreak)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialDelay)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AR_SOURCE_KIND", "REDIS")
	t.Setenv("AR_REDIS_ADDR", "cache:6380")
	t.Setenv("AR_LOGGING_LEVEL", "debug")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, SourceRedis, cfg.Source.Kind)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown source", func(c *Config) { c.Source.Kind = "s3" }, "source.kind"},
		{"unknown tie break", func(c *Config) { c.Ranker.TieBreak = "random" }, "ranker.tieBreak"},
		{"zero epsilon", func(c *Config) { c.Ranker.Epsilon = 0 }, "ranker.epsilon"},
		{"unknown labels", func(c *Config) { c.Progress.Labels = "roman" }, "progress.labels"},
		{"bad metrics port", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Port = 0 }, "metrics.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
