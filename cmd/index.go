package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/progress"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the notes catalog",
	Long: `Scans the notes directory, derives a title for every note and writes the
catalog file that readers, the static site and the server load.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("notes-dir", "", "override the notes directory")
	indexCmd.Flags().StringP("output", "o", "", "override the catalog output path")
	indexCmd.Flags().BoolP("watch", "w", false, "rewrite the catalog whenever a note changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("notes-dir"); dir != "" {
		cfg.NotesDir = dir
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output = out
	}

	ctx, stop := signalContext()
	defer stop()

	rep := progress.NewReporter("Indexing notes")
	c, err := catalog.Build(ctx, notesSource(cfg), buildOptions(cfg, rep))
	rep.Finish()
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if err := catalog.Write(cfg.Output, c); err != nil {
		return err
	}
	fmt.Printf("Generated index with %d notes at %s\n", len(c), cfg.Output)

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", cfg.NotesDir)
	w := &catalog.Watcher{
		Source:  notesSource(cfg),
		Options: buildOptions(cfg, nil),
		OnBuild: func(c catalog.Catalog, err error) {
			if err != nil {
				log.Printf("index: rebuild failed: %v", err)
				return
			}
			if err := catalog.Write(cfg.Output, c); err != nil {
				log.Printf("index: %v", err)
				return
			}
			if verbose {
				log.Printf("index: wrote %d notes to %s", len(c), cfg.Output)
			}
		},
	}
	return w.Run(ctx)
}
