package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url %q: scheme must be http or https", c.ServerURL)
	}

	if c.ServerRoot == "" {
		return fmt.Errorf("server_root is required")
	}
	if c.ServerRoot != "~" && !strings.HasPrefix(c.ServerRoot, "~/") && !strings.HasPrefix(c.ServerRoot, "/") {
		return fmt.Errorf("server_root %q must be absolute or start with ~", c.ServerRoot)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
