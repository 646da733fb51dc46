package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/loader"
	"github.com/ziadkadry99/notebook/internal/reader"
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Open a note from a published notebook",
	Long: `Loads the catalog from the reader base URL, opens one note the way the
browser reader does and prints its outline with the previous and next notes.
Without an id the first note in the catalog is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().String("base-url", "", "override the reader base URL")
	readCmd.Flags().StringP("fragment", "f", "", "jump to a heading by slug or title")
	readCmd.Flags().Bool("content", false, "print the note's markdown after the outline")
	readCmd.Flags().Duration("timeout", 30*time.Second, "give up after this long")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	baseURL := cfg.Reader.BaseURL
	if u, _ := cmd.Flags().GetString("base-url"); u != "" {
		baseURL = u
	}
	fragment, _ := cmd.Flags().GetString("fragment")
	showContent, _ := cmd.Flags().GetBool("content")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	var id string
	if len(args) == 1 {
		id = args[0]
	}

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fetcher := &loader.HTTPFetcher{BaseURL: baseURL}
	st, err := openNote(ctx, fetcher, fetcher.FetchCatalog, id, fragment)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if st.Status == reader.StatusNotFound {
		fmt.Fprintln(out, st.Content)
		return fmt.Errorf("note %q not found", id)
	}
	if st.Status == reader.StatusIdle {
		fmt.Fprintln(out, st.Banner)
		return nil
	}
	printNote(out, st)
	if showContent {
		fmt.Fprintf(out, "\n%s\n", strings.TrimRight(st.Content, "\n"))
	}
	return nil
}

// openNote drives a reader session until the note identified by id has
// settled, then clicks fragment if one was given.
func openNote(ctx context.Context, f loader.Fetcher, fetchCatalog func(context.Context) (catalog.Catalog, error), id, fragment string) (reader.State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	states := make(chan reader.State, 16)
	commands := make(chan reader.Command, 16)

	sess := reader.NewSession(f)
	sess.OnChange = func(st reader.State) {
		select {
		case states <- st:
		case <-ctx.Done():
		}
	}
	sess.OnCommand = func(c reader.Command) {
		select {
		case commands <- c:
		case <-ctx.Done():
		}
	}
	go func() { _ = sess.Run(ctx) }()

	sess.LoadCatalog(ctx, fetchCatalog)
	sess.Dispatch(reader.DocumentSelected{ID: id})

	clicked := false
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return reader.State{}, fmt.Errorf("timed out opening %q", id)
			}
			return reader.State{}, ctx.Err()

		case c := <-commands:
			// The reducer already fetches the redirect target.
			if r, ok := c.(reader.Redirect); ok {
				id = r.ID
			}

		case st := <-states:
			if st.CatalogStatus == reader.CatalogError {
				return st, errors.New(st.Banner)
			}
			switch st.Status {
			case reader.StatusError:
				return st, errors.New(st.Banner)
			case reader.StatusNotFound:
				return st, nil
			case reader.StatusIdle:
				if st.CatalogStatus == reader.CatalogReady && st.Banner != "" {
					return st, nil
				}
			case reader.StatusReady:
				if fragment == "" || clicked {
					return st, nil
				}
				clicked = true
				sess.Dispatch(reader.TOCEntryClicked{Slug: fragment})
			}
		}
	}
}

func printNote(w io.Writer, st reader.State) {
	entry, _ := st.Entry()
	fmt.Fprintf(w, "%s (%s)\n", entry.Title, entry.ID)

	active, _ := st.Active()
	for _, h := range st.TOC {
		marker := " "
		if h.Slug == active {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %s%s  #%s\n", marker, strings.Repeat("  ", h.Level-1), h.Title, h.Slug)
	}

	prev, next := st.Neighbors()
	if prev != nil {
		fmt.Fprintf(w, "\nPrevious: %s (%s)\n", prev.Title, prev.ID)
	}
	if next != nil {
		if prev == nil {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Next: %s (%s)\n", next.Title, next.ID)
	}
}
