// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults target the 5.83" two-colour panel: 648x480,
// a 10 s poll with a 10 s fetch timeout and a 3-failure debounce.
const (
	DefaultFeedURL          = "https://sirens.in.ua/api/v1/"
	DefaultTimeoutMs        = 10_000
	DefaultIntervalMs       = 10_000
	DefaultFailureThreshold = 3
	DefaultWidth            = 648
	DefaultHeight           = 480
	DefaultMarginX          = 140
	DefaultMarginY          = 130
	DefaultOversample       = 2
	DefaultOutputDir        = "frames"
	DefaultSink             = "file"
	DefaultNATSSubject      = "sirens.snapshot"
	DefaultModbusTimeoutMs  = 2_000
	DefaultMaxBytes         = 1 << 20
)

// Default returns a fully populated configuration.
func Default() *Config {
	return &Config{
		Feed: FeedConfig{
			URL:       DefaultFeedURL,
			TimeoutMs: DefaultTimeoutMs,
			MaxBytes:  DefaultMaxBytes,
		},
		Poll: PollConfig{
			IntervalMs:       DefaultIntervalMs,
			FailureThreshold: DefaultFailureThreshold,
		},
		Display: DisplayConfig{
			Sink:      DefaultSink,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			OutputDir: DefaultOutputDir,
			Rotate180: true,
		},
		Map: MapConfig{
			MarginX:    DefaultMarginX,
			MarginY:    DefaultMarginY,
			Oversample: DefaultOversample,
		},
		NATS: NATSConfig{
			Subject: DefaultNATSSubject,
		},
		Modbus: ModbusConfig{
			UnitID:    1,
			TimeoutMs: DefaultModbusTimeoutMs,
		},
	}
}

// Load reads a YAML file over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := decode(b, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes over the defaults.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := decode(b, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func decode(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
