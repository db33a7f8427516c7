package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocolors/internal/colortrack"
	"videocolors/internal/framecolor"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, colortrack.ExecutorPool, cfg.Executor)
	assert.Equal(t, "mean", cfg.ColorMode)
	assert.Equal(t, 90, cfg.MinChunkSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "colors", cfg.ColorsRoot)
	assert.Empty(t, cfg.SinkURL)
	assert.Empty(t, cfg.JaegerEndpoint)
	assert.False(t, cfg.StatelessMode)
	assert.Equal(t, colortrack.DefaultWorkers(), cfg.EffectiveWorkers())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COLORTRACK_WORKERS", "4")
	t.Setenv("COLORTRACK_EXECUTOR", "forkjoin")
	t.Setenv("COLORTRACK_COLOR_MODE", "dominant")
	t.Setenv("COLORTRACK_MIN_CHUNK_SECONDS", "30")
	t.Setenv("STATELESS_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.EffectiveWorkers())
	assert.Equal(t, colortrack.ExecutorForkJoin, cfg.Executor)
	assert.Equal(t, 30, cfg.MinChunkSeconds)
	assert.True(t, cfg.StatelessMode)

	colors, err := cfg.Extractor()
	require.NoError(t, err)
	assert.IsType(t, &framecolor.Dominant{}, colors)

	opts, err := cfg.PipelineOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv("COLORTRACK_WORKERS", "many")
	_, err := Load()
	assert.ErrorIs(t, err, colortrack.ErrConfig)
}

func TestValidate(t *testing.T) {
	base := Config{Executor: "pool", ColorMode: "mean", MinChunkSeconds: 90}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative chunk floor", func(c *Config) { c.MinChunkSeconds = -5 }},
		{"unknown executor", func(c *Config) { c.Executor = "threads" }},
		{"unknown color mode", func(c *Config) { c.ColorMode = "median" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), colortrack.ErrConfig)
		})
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colortrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileOverlaysEnvironment(t *testing.T) {
	t.Setenv("COLORTRACK_WORKERS", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFile(writeFile(t, "workers: 8\ncolor_mode: dominant\nsink_url: http://sink:9000\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "dominant", cfg.ColorMode)
	assert.Equal(t, "http://sink:9000", cfg.SinkURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, colortrack.ExecutorPool, cfg.Executor)
}

func TestLoadFileEmpty(t *testing.T) {
	cfg, err := LoadFile(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.MinChunkSeconds)
}

func TestLoadFileRejects(t *testing.T) {
	_, err := LoadFile(writeFile(t, "threads: 4\n"))
	assert.ErrorIs(t, err, colortrack.ErrConfig)

	_, err = LoadFile(writeFile(t, "executor: threads\n"))
	assert.ErrorIs(t, err, colortrack.ErrConfig)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
