// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Feed.URL = strings.TrimSpace(cfg.Feed.URL)
	cfg.Display.Sink = strings.ToLower(strings.TrimSpace(cfg.Display.Sink))

	if cfg.Display.OutputDir == "" {
		cfg.Display.OutputDir = DefaultOutputDir
	}
	if cfg.Map.Oversample == 0 {
		cfg.Map.Oversample = DefaultOversample
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = DefaultNATSSubject
	}
	if cfg.Modbus.TimeoutMs == 0 {
		cfg.Modbus.TimeoutMs = DefaultModbusTimeoutMs
	}

	// Truncate device_name to the 16 characters the status block holds.
	if len(cfg.Modbus.DeviceName) > 16 {
		cfg.Modbus.DeviceName = cfg.Modbus.DeviceName[:16]
	}
}
