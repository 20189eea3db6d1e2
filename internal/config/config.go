// internal/config/config.go
package config

type Config struct {
	Feed    FeedConfig    `yaml:"feed"`
	Poll    PollConfig    `yaml:"poll"`
	Display DisplayConfig `yaml:"display"`
	Map     MapConfig     `yaml:"map"`
	Metrics MetricsConfig `yaml:"metrics"`
	HTTP    HTTPConfig    `yaml:"http"`
	NATS    NATSConfig    `yaml:"nats"`
	Modbus  ModbusConfig  `yaml:"modbus"`
}

// ---- FEED ----

type FeedConfig struct {
	URL       string `yaml:"url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	UserAgent string `yaml:"user_agent"`
	MaxBytes  int64  `yaml:"max_bytes"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs       int `yaml:"interval_ms"`
	FailureThreshold int `yaml:"failure_threshold"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	// Sink selects the display implementation: "file" or "none".
	Sink       string `yaml:"sink"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	OutputDir  string `yaml:"output_dir"`
	Rotate180  bool   `yaml:"rotate_180"`
	RawBuffers bool   `yaml:"raw_buffers"`
}

// ---- MAP ----

type MapConfig struct {
	// Artwork is a GeoJSON template path; empty uses the embedded map.
	Artwork    string `yaml:"artwork"`
	MarginX    int    `yaml:"margin_x"`
	MarginY    int    `yaml:"margin_y"`
	Oversample int    `yaml:"oversample"`
}

// ---- OPTIONAL SURFACES (empty address/url = disabled) ----

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type ModbusConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	DeviceName  string `yaml:"device_name"`
}
