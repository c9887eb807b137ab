// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/user/stickerize/pkg/adapters/gifdecoder"
	"github.com/user/stickerize/pkg/adapters/smartencoder"
	"github.com/user/stickerize/pkg/adapters/toolpath"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatHclog   = "hclog"
	FormatJSON    = "json"
)

// Config represents the full configuration for stickerize.
type Config struct {
	// Output
	Kind string `yaml:"kind"`

	// Tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	WebPMuxPath string `yaml:"webpmux_path"`

	// Processing
	TempDir       string `yaml:"temp_dir"`
	Workers       int    `yaml:"workers"`
	StaticEncoder string `yaml:"static_encoder"`
	ZeroDelayMs   int    `yaml:"zero_delay_ms"`
	CRF           int    `yaml:"crf"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Kind: string(media.StickerRegular),

		// Zero workers sizes the pool from the CPU count.
		Workers:       0,
		StaticEncoder: string(smartencoder.StaticAuto),
		ZeroDelayMs:   gifdecoder.DefaultZeroDelayMs,
		CRF:           17,

		LogLevel:  "info",
		LogFormat: FormatConsole,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
// Unknown keys are an error.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs error
	if _, err := media.ParseStickerKind(c.Kind); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := smartencoder.ParseStaticMode(c.StaticEncoder); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := ports.LookupLogLevel(c.LogLevel); err != nil {
		errs = multierr.Append(errs, err)
	}
	switch c.LogFormat {
	case FormatConsole, FormatHclog, FormatJSON:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.Workers < 0 {
		errs = multierr.Append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.CRF < 0 || c.CRF > 63 {
		errs = multierr.Append(errs, fmt.Errorf("crf must be within 0..63, got %d", c.CRF))
	}
	return errs
}

// StickerKind returns the parsed Kind. Call Validate first.
func (c Config) StickerKind() media.StickerKind {
	k, _ := media.ParseStickerKind(c.Kind)
	return k
}

// StaticMode returns the parsed StaticEncoder. Call Validate first.
func (c Config) StaticMode() smartencoder.StaticMode {
	m, _ := smartencoder.ParseStaticMode(c.StaticEncoder)
	return m
}

// ToolOverrides maps tool names to configured custom paths.
func (c Config) ToolOverrides() map[string]string {
	overrides := map[string]string{}
	if c.FFmpegPath != "" {
		overrides[toolpath.FFmpeg] = c.FFmpegPath
	}
	if c.WebPMuxPath != "" {
		overrides[toolpath.WebPMux] = c.WebPMuxPath
	}
	return overrides
}

// GIFOptions returns the GIF decoder options. A zero_delay_ms of 0 or less
// keeps stored zero delays.
func (c Config) GIFOptions() gifdecoder.Options {
	opts := gifdecoder.DefaultOptions()
	opts.ZeroDelayMs = c.ZeroDelayMs
	return opts
}
