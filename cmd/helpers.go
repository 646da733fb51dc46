package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/config"
	"github.com/ziadkadry99/notebook/internal/progress"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `notebook init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// notesSource returns the catalog source described by cfg.
func notesSource(cfg *config.Config) catalog.DirSource {
	return catalog.DirSource{Dir: cfg.NotesDir, Include: cfg.Include, Exclude: cfg.Exclude}
}

// buildOptions returns catalog build options that report to rep, if set.
func buildOptions(cfg *config.Config, rep progress.Reporter) catalog.Options {
	opts := catalog.Options{PathPrefix: cfg.PathPrefix, Concurrency: cfg.MaxConcurrency}
	if rep != nil {
		opts.Progress = progress.Track(rep)
	}
	return opts
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
