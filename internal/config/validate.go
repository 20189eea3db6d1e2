// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil configuration")
	}

	// ------------------------------------------------------------
	// FEED + POLL
	// ------------------------------------------------------------

	u, err := url.Parse(strings.TrimSpace(cfg.Feed.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("feed.url must be an absolute http(s) url, got %q", cfg.Feed.URL)
	}
	if cfg.Feed.TimeoutMs <= 0 {
		return fmt.Errorf("feed.timeout_ms must be > 0, got %d", cfg.Feed.TimeoutMs)
	}
	if cfg.Feed.MaxBytes < 0 {
		return fmt.Errorf("feed.max_bytes must not be negative, got %d", cfg.Feed.MaxBytes)
	}
	if cfg.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll.interval_ms must be > 0, got %d", cfg.Poll.IntervalMs)
	}
	if cfg.Poll.FailureThreshold < 1 {
		return fmt.Errorf("poll.failure_threshold must be >= 1, got %d", cfg.Poll.FailureThreshold)
	}

	// ------------------------------------------------------------
	// DISPLAY + MAP GEOMETRY
	// ------------------------------------------------------------

	switch strings.ToLower(strings.TrimSpace(cfg.Display.Sink)) {
	case "file", "none":
	default:
		return fmt.Errorf("display.sink must be \"file\" or \"none\", got %q", cfg.Display.Sink)
	}
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Map.MarginX < 0 || cfg.Map.MarginY < 0 {
		return fmt.Errorf("map margins must not be negative, got %dx%d", cfg.Map.MarginX, cfg.Map.MarginY)
	}
	if cfg.Map.MarginX >= cfg.Display.Width || cfg.Map.MarginY >= cfg.Display.Height {
		return fmt.Errorf(
			"map margins %dx%d leave no room for the map on a %dx%d display",
			cfg.Map.MarginX, cfg.Map.MarginY, cfg.Display.Width, cfg.Display.Height,
		)
	}
	if cfg.Map.Oversample < 0 || cfg.Map.Oversample > 8 {
		return fmt.Errorf("map.oversample must be within 0..8, got %d", cfg.Map.Oversample)
	}

	// ------------------------------------------------------------
	// NATS
	// ------------------------------------------------------------

	if cfg.NATS.URL != "" && strings.ContainsAny(cfg.NATS.Subject, " \t\r\n") {
		return fmt.Errorf("nats.subject must not contain whitespace, got %q", cfg.NATS.Subject)
	}

	// ------------------------------------------------------------
	// MODBUS REGISTER MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Modbus.Endpoint == "" {
		return nil
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(cfg.Modbus.DeviceName); i++ {
		if cfg.Modbus.DeviceName[i] > 0x7F {
			return fmt.Errorf("modbus.device_name must contain ASCII characters only")
		}
	}
	if cfg.Modbus.TimeoutMs < 0 {
		return fmt.Errorf("modbus.timeout_ms must not be negative, got %d", cfg.Modbus.TimeoutMs)
	}

	return nil
}
