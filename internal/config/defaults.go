package config

import "github.com/ziadkadry99/notebook/internal/spy"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		NotesDir:       "public/notes",
		Output:         "public/notes-index.json",
		PathPrefix:     "/notes/",
		Include:        []string{"*.md"},
		MaxConcurrency: 4,
		Site: SiteConfig{
			OutputDir: "site",
			Title:     "Notes",
		},
		Server: ServerConfig{
			Port:      8080,
			Watch:     true,
			CacheSize: 128,
		},
		Reader: ReaderConfig{
			Band:             spy.DefaultBand,
			MobileBreakpoint: 1024,
			BaseURL:          "http://localhost:8080/",
		},
	}
}
