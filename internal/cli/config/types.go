// Package config provides configuration management for the kernelnav CLI.
//
// Configuration is layered: defaults, then kernelnav.yaml, then
// KERNELNAV_* environment variables, then command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	// ServerURL is the Jupyter server address.
	ServerURL string `koanf:"server_url"`
	// Token is the Jupyter API token.
	Token string `koanf:"token"`
	// ServerRoot is the filesystem directory the server treats as its
	// workspace boundary. "~" shorthand is resolved against kernel paths
	// at lookup time, matching how the server reports it.
	ServerRoot string `koanf:"server_root"`
	// Timeout bounds each REST call.
	Timeout      time.Duration `koanf:"timeout"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	UI           *UIConfig     `koanf:"ui"`
	Serve        *ServeConfig  `koanf:"serve"`
}

// UIConfig holds configuration for the interactive launcher UI.
type UIConfig struct {
	// RefreshInterval between automatic kernel list reloads; zero
	// disables automatic refresh.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// ServeConfig holds configuration for the kernel-path API server.
type ServeConfig struct {
	Port  int  `koanf:"port"`
	Watch bool `koanf:"watch"`
}

// Default configuration values.
const (
	DefaultServerURL  = "http://localhost:8888"
	DefaultServerRoot = "~"
	DefaultTimeout    = 15 * time.Second
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultServePort  = 8890
)

// GetUIConfig returns the UI config with defaults applied.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return &UIConfig{}
	}
	return c.UI
}

// GetServeConfig returns the serve config with defaults applied.
func (c *Config) GetServeConfig() *ServeConfig {
	if c.Serve == nil {
		return &ServeConfig{Port: DefaultServePort, Watch: true}
	}
	s := c.Serve
	if s.Port == 0 {
		s.Port = DefaultServePort
	}
	return s
}
