package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wlansim/wmedium/internal/protocol"
	"github.com/wlansim/wmedium/internal/server"
)

// Config is the daemon configuration file.
type Config struct {
	// SocketPath is where the control socket is bound.
	SocketPath string `yaml:"socket_path,omitempty"`
	// LogLevel is the zap level ("debug", "info", "warn", "error").
	// Empty falls back to the WMEDIUM_LOG_LEVEL environment variable.
	LogLevel string `yaml:"log_level,omitempty"`
	// MetricsAddr enables the Prometheus /metrics endpoint on the given
	// TCP address when non-empty (e.g. "127.0.0.1:9390").
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
	// DefaultSNR fills fresh matrix cells when a station is added.
	DefaultSNR int32 `yaml:"default_snr,omitempty"`
	// Stations is the initial roster registered before the server starts.
	Stations []StationConfig `yaml:"stations,omitempty"`
	// Links seeds the signal matrix between roster stations.
	Links []LinkConfig `yaml:"links,omitempty"`
}

// StationConfig is one roster entry.
type StationConfig struct {
	Addr string `yaml:"addr"`
}

// LinkConfig seeds one directed matrix cell.
type LinkConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	SNR  int32  `yaml:"snr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SocketPath: server.DefaultSocketPath,
	}
}

// Load reads and validates a daemon configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = server.DefaultSocketPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the roster and link seeds for well-formed, known
// addresses so a bad file fails startup instead of surfacing later as
// a not-found response.
func (c *Config) Validate() error {
	seen := make(map[protocol.MAC]bool)
	for i, sta := range c.Stations {
		mac, err := protocol.ParseMAC(sta.Addr)
		if err != nil {
			return fmt.Errorf("stations[%d]: %w", i, err)
		}
		if seen[mac] {
			return fmt.Errorf("stations[%d]: duplicate address %s", i, mac)
		}
		seen[mac] = true
	}

	for i, link := range c.Links {
		from, err := protocol.ParseMAC(link.From)
		if err != nil {
			return fmt.Errorf("links[%d].from: %w", i, err)
		}
		to, err := protocol.ParseMAC(link.To)
		if err != nil {
			return fmt.Errorf("links[%d].to: %w", i, err)
		}
		if !seen[from] {
			return fmt.Errorf("links[%d]: from address %s is not in the station roster", i, from)
		}
		if !seen[to] {
			return fmt.Errorf("links[%d]: to address %s is not in the station roster", i, to)
		}
	}
	return nil
}
