package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"videocolors/internal/colortrack"
	"videocolors/internal/framecolor"
)

type Config struct {
	Workers         int    `env:"COLORTRACK_WORKERS"           envDefault:"0"    yaml:"workers"`
	Executor        string `env:"COLORTRACK_EXECUTOR"          envDefault:"pool" yaml:"executor"`
	ColorMode       string `env:"COLORTRACK_COLOR_MODE"        envDefault:"mean" yaml:"color_mode"`
	MinChunkSeconds int    `env:"COLORTRACK_MIN_CHUNK_SECONDS" envDefault:"90"   yaml:"min_chunk_seconds"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" yaml:"log_level"`

	HTTPAddr      string `env:"HTTP_ADDR"      envDefault:":8080"  yaml:"http_addr"`
	ColorsRoot    string `env:"COLORS_ROOT"    envDefault:"colors" yaml:"colors_root"`
	StatelessMode bool   `env:"STATELESS_MODE" envDefault:"false"  yaml:"stateless_mode"`

	SinkURL        string `env:"SINK_URL"        yaml:"sink_url"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" yaml:"jaeger_endpoint"`
}

func Load() (*Config, error) {
	cfg, err := parseEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the environment and then overlays the YAML file at path.
// Keys present in the file win. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	cfg, err := parseEnv()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode %s: %w", colortrack.ErrConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", colortrack.ErrConfig, err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with. Errors wrap
// colortrack.ErrConfig.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", colortrack.ErrConfig, c.Workers)
	}
	if c.MinChunkSeconds < 0 {
		return fmt.Errorf("%w: min chunk seconds must not be negative, got %d", colortrack.ErrConfig, c.MinChunkSeconds)
	}
	if !slices.Contains([]string{"", colortrack.ExecutorPool, colortrack.ExecutorForkJoin}, c.Executor) {
		return fmt.Errorf("%w: unknown executor %q", colortrack.ErrConfig, c.Executor)
	}
	if c.ColorMode != "" && !framecolor.IsValidMode(framecolor.Mode(c.ColorMode)) {
		return fmt.Errorf("%w: unknown color mode %q", colortrack.ErrConfig, c.ColorMode)
	}
	return nil
}

// EffectiveWorkers resolves the zero value to the machine default.
func (c *Config) EffectiveWorkers() int {
	if c.Workers == 0 {
		return colortrack.DefaultWorkers()
	}
	return c.Workers
}

// PipelineOptions turns the extraction settings into pipeline options.
func (c *Config) PipelineOptions() ([]colortrack.Option, error) {
	exec, err := colortrack.NewExecutor(c.Executor, c.EffectiveWorkers())
	if err != nil {
		return nil, err
	}
	opts := []colortrack.Option{
		colortrack.WithWorkers(c.EffectiveWorkers()),
		colortrack.WithExecutor(exec),
	}
	if c.MinChunkSeconds > 0 {
		opts = append(opts, colortrack.WithMinChunkSeconds(c.MinChunkSeconds))
	}
	return opts, nil
}

// Extractor returns the color extractor for the configured mode.
func (c *Config) Extractor() (colortrack.ColorExtractor, error) {
	colors, err := framecolor.New(framecolor.Mode(c.ColorMode))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", colortrack.ErrConfig, err)
	}
	return colors, nil
}
