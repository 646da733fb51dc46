package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/notebook/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Index, render and serve a directory of markdown notes",
	Long: `Notebook scans a directory of markdown notes, builds a catalog of
titles and paths, and turns it into something you can read: a static
site, a live server with reload, or MCP tools for AI agents. Every
heading gets a stable anchor and every page knows its neighbors.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
