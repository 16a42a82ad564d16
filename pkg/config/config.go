// Package config loads the optional agent-browser configuration file.
// Everything in it is a default that the command line can override; a
// missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the user-level defaults read from
// ~/.agent-browser/config.yaml.
type Config struct {
	// Session is the default session name when neither
	// AGENT_BROWSER_SESSION nor --session is given.
	Session string `yaml:"session"`

	// Headed launches browsers with a visible window by default.
	Headed bool `yaml:"headed"`

	// SocketDir overrides where daemon sockets live. Empty means
	// ~/.agent-browser/run.
	SocketDir string `yaml:"socket_dir"`

	// IdleTimeout shuts the daemon down after this long without a
	// command. Zero means the 30 minute default.
	IdleTimeout Duration `yaml:"idle_timeout"`
}

// Duration is a time.Duration that unmarshals from yaml strings like
// "5m" or "1h30m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultIdleTimeout is how long an idle daemon stays alive.
const DefaultIdleTimeout = 30 * time.Minute

// Dir returns the agent-browser home directory (~/.agent-browser).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".agent-browser"), nil
}

// Load reads the config file at path, or the default location when
// path is empty. A missing file yields a zero config.
func Load(path string) (*Config, error) {
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// SocketPath returns the unix socket path for a named session,
// creating the socket directory if needed.
func (c *Config) SocketPath(session string) (string, error) {
	dir := c.SocketDir
	if dir == "" {
		base, err := Dir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "run")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create socket directory: %w", err)
	}
	return filepath.Join(dir, session+".sock"), nil
}

// Idle returns the effective idle timeout.
func (c *Config) Idle() time.Duration {
	if c.IdleTimeout > 0 {
		return time.Duration(c.IdleTimeout)
	}
	return DefaultIdleTimeout
}
