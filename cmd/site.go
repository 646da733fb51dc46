package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/notebook/internal/progress"
	"github.com/ziadkadry99/notebook/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static reader site",
	Long: `Generates a self-contained static site from the notes directory: one
rendered page per note with a sidebar, chapter links and scroll tracking,
plus the raw notes and the catalog file.`,
	Args: cobra.NoArgs,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "override the output directory")
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 8080, "port for the local server")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Site.OutputDir
	}

	ctx, stop := signalContext()
	defer stop()

	rep := progress.NewReporter("Rendering notes")
	g := site.NewGenerator(cfg.NotesDir, outputDir, cfg.Site.Title)
	g.Include = cfg.Include
	g.Exclude = cfg.Exclude
	g.Band = cfg.Reader.Band
	g.Breakpoint = cfg.Reader.MobileBreakpoint
	g.Concurrency = cfg.MaxConcurrency
	g.Progress = progress.Track(rep)

	pageCount, err := g.Generate(ctx)
	rep.Finish()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return nil
	}

	port, _ := cmd.Flags().GetInt("port")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: http.FileServer(http.Dir(filepath.Clean(outputDir))),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Serving at http://localhost:%d (Ctrl+C to stop)\n", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
