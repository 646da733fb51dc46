package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/notebook/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list notes, read them, and navigate their headings.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "notebook MCP server started on stdio (notes=%s)\n", cfg.NotesDir)

		srv := mcpserver.NewServer(notesSource(cfg), buildOptions(cfg, nil))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
