// ABOUTME: Configuration loading for service connections
// ABOUTME: Supports YAML files with named destinations and defaults

package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Mr-Sunglasses/podman-py/internal/xdg"
)

// DefaultTimeoutSeconds bounds a single HTTP exchange with the service.
const DefaultTimeoutSeconds = 60

type Config struct {
	Service           ServiceConfig          `mapstructure:"service"`
	DefaultConnection string                 `mapstructure:"default_connection"`
	Connections       map[string]Destination `mapstructure:"connections"`
}

type ServiceConfig struct {
	URI            string `mapstructure:"uri"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	TLSVerify      bool   `mapstructure:"tls_verify"`
	CertPath       string `mapstructure:"cert_path"`
}

// Destination is a named service endpoint, mirroring podman's system
// connections.
type Destination struct {
	URI      string `mapstructure:"uri" yaml:"uri"`
	Identity string `mapstructure:"identity" yaml:"identity"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// IMPORTANT: Viper lowercases all map keys, but connection names are
	// case-sensitive identifiers. Parse YAML directly to preserve them.
	//nolint:gosec // config file path from validated user input
	data, err := os.ReadFile(path)
	if err == nil {
		var rawConfig struct {
			Connections map[string]Destination `yaml:"connections"`
		}
		if yaml.Unmarshal(data, &rawConfig) == nil && len(rawConfig.Connections) > 0 {
			cfg.Connections = rawConfig.Connections
		}
	}

	// Expand XDG variables and ~ in the certificate directory
	cfg.Service.CertPath = xdg.ExpandPath(cfg.Service.CertPath)

	if cfg.Service.TimeoutSeconds == 0 {
		cfg.Service.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if cfg.DefaultConnection != "" {
		if _, ok := cfg.Connections[cfg.DefaultConnection]; !ok {
			return nil, fmt.Errorf("default_connection %q not present in connections", cfg.DefaultConnection)
		}
	}

	return &cfg, nil
}

// ResolveURI returns the configured service URI: an explicit service.uri
// wins, then the default named connection. Empty when the config names
// neither; the caller falls back to environment and socket detection.
func (c *Config) ResolveURI() string {
	if c.Service.URI != "" {
		return c.Service.URI
	}
	if c.DefaultConnection != "" {
		if dest, ok := c.Connections[c.DefaultConnection]; ok {
			return dest.URI
		}
	}
	return ""
}
