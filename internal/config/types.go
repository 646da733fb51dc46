package config

import "github.com/ziadkadry99/notebook/internal/spy"

// DefaultConfigFile is the configuration file read when --config is not given.
const DefaultConfigFile = ".notebook.yml"

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: NOTEBOOK_SERVER__PORT sets server.port.
const EnvPrefix = "NOTEBOOK_"

// Config is the top-level notebook configuration, corresponding to .notebook.yml.
type Config struct {
	NotesDir       string       `yaml:"notes_dir" koanf:"notes_dir"`
	Output         string       `yaml:"output" koanf:"output"`
	PathPrefix     string       `yaml:"path_prefix" koanf:"path_prefix"`
	Include        []string     `yaml:"include" koanf:"include"`
	Exclude        []string     `yaml:"exclude" koanf:"exclude"`
	MaxConcurrency int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	Site           SiteConfig   `yaml:"site" koanf:"site"`
	Server         ServerConfig `yaml:"server" koanf:"server"`
	Reader         ReaderConfig `yaml:"reader" koanf:"reader"`
}

// SiteConfig holds settings for the static site generator.
type SiteConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
	Title     string `yaml:"title" koanf:"title"`
}

// ServerConfig holds settings for the live reading server.
type ServerConfig struct {
	Port      int  `yaml:"port" koanf:"port"`
	Watch     bool `yaml:"watch" koanf:"watch"`
	CacheSize int  `yaml:"cache_size" koanf:"cache_size"`
	AllowAll  bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ReaderConfig holds settings shared by every reading view.
type ReaderConfig struct {
	// Band is the scroll-spy engaged band.
	Band spy.Band `yaml:"band" koanf:"band"`
	// MobileBreakpoint is the width below which the sidebar closes after
	// navigation.
	MobileBreakpoint int `yaml:"mobile_breakpoint" koanf:"mobile_breakpoint"`
	// BaseURL is where a remote reader fetches the catalog and notes from.
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}
