package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/notebook/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the live notes server",
	Long: `Serves rendered notes, the raw markdown and a JSON API straight from the
notes directory. The catalog is rebuilt when notes change and open pages
reload over a websocket.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("watch") {
			cfg.Server.Watch, _ = cmd.Flags().GetBool("watch")
		}

		srv, err := server.New(server.Config{
			Port:        cfg.Server.Port,
			NotesDir:    cfg.NotesDir,
			Include:     cfg.Include,
			Exclude:     cfg.Exclude,
			PathPrefix:  cfg.PathPrefix,
			Concurrency: cfg.MaxConcurrency,
			SiteTitle:   cfg.Site.Title,
			Band:        cfg.Reader.Band,
			Breakpoint:  cfg.Reader.MobileBreakpoint,
			CacheSize:   cfg.Server.CacheSize,
			Watch:       cfg.Server.Watch,
			AllowAll:    cfg.Server.AllowAll,
		})
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		fmt.Fprintf(os.Stderr, "notebook server %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Notes: %s\n", cfg.NotesDir)
		fmt.Fprintf(os.Stderr, "  Watch: %t\n", cfg.Server.Watch)

		return srv.Run(ctx)
	},
}

func init() {
	serverCmd.Flags().Int("port", 8080, "port to listen on")
	serverCmd.Flags().Bool("watch", true, "rebuild the catalog when notes change")
	rootCmd.AddCommand(serverCmd)
}
