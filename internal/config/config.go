package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NOTEBOOK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: NOTEBOOK_NOTES_DIR -> notes_dir,
	// NOTEBOOK_SERVER__PORT -> server.port.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.NotesDir == "" {
		return fmt.Errorf("notes_dir is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if !strings.HasPrefix(c.PathPrefix, "/") {
		return fmt.Errorf("invalid path_prefix %q: must start with /", c.PathPrefix)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size must be non-negative")
	}
	if !c.Reader.Band.Valid() {
		return fmt.Errorf("invalid reader.band: top %.2f and bottom %.2f must be non-negative and leave part of the viewport", c.Reader.Band.Top, c.Reader.Band.Bottom)
	}
	if c.Reader.MobileBreakpoint <= 0 {
		return fmt.Errorf("reader.mobile_breakpoint must be positive")
	}
	if c.Reader.BaseURL != "" {
		u, err := url.Parse(c.Reader.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid reader.base_url %q", c.Reader.BaseURL)
		}
	}
	return nil
}
