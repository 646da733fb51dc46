package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/render"
	"github.com/ziadkadry99/notebook/internal/spy"
)

// DefaultBreakpoint is the viewport width below which the sidebar is a
// drawer that closes after navigation.
const DefaultBreakpoint = 1024

// Generator converts a notes directory into a static reading site:
//
//	index.html            redirect to the first note
//	notes-index.json      the catalog
//	notes/<file>.md       raw notes, as the catalog paths expect
//	read/<id>.html        one rendered page per note
//	style.css, script.js
type Generator struct {
	NotesDir  string
	OutputDir string
	SiteTitle string
	Include   []string
	Exclude   []string

	// Band is the scroll-spy engaged band used by the page script.
	Band       spy.Band
	Breakpoint int
	// Concurrency bounds parallel reads and page renders.
	Concurrency int
	Progress    func(done, total int, name string)
}

// NewGenerator returns a Generator with default band and breakpoint.
func NewGenerator(notesDir, outputDir, siteTitle string) *Generator {
	return &Generator{
		NotesDir:   notesDir,
		OutputDir:  outputDir,
		SiteTitle:  siteTitle,
		Band:       spy.DefaultBand,
		Breakpoint: DefaultBreakpoint,
	}
}

// Generate builds the site and returns the number of notes rendered.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	src := catalog.DirSource{Dir: g.NotesDir, Include: g.Include, Exclude: g.Exclude}
	cat, err := catalog.Build(ctx, src, catalog.Options{
		Concurrency: g.Concurrency,
		Progress:    g.Progress,
	})
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Join(g.OutputDir, "read"), 0o755); err != nil {
		return 0, fmt.Errorf("site: %w", err)
	}
	if err := catalog.Write(filepath.Join(g.OutputDir, catalog.DefaultFileName), cat); err != nil {
		return 0, err
	}
	for _, name := range []string{"style.css", "script.js"} {
		data, _ := Asset(name)
		if err := os.WriteFile(filepath.Join(g.OutputDir, name), data, 0o644); err != nil {
			return 0, fmt.Errorf("site: %w", err)
		}
	}
	if err := g.writeIndex(cat); err != nil {
		return 0, err
	}

	pages, err := NewPageRenderer(PageOptions{
		SiteTitle:  g.SiteTitle,
		Band:       g.Band,
		Breakpoint: g.Breakpoint,
		BasePath:   "../",
		Renderer:   render.New(render.WithLinkBase("."), render.WithLinkSuffix(".html")),
	})
	if err != nil {
		return 0, err
	}

	limit := g.Concurrency
	if limit <= 0 {
		limit = catalog.DefaultConcurrency
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, entry := range cat {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := src.Read(ctx, entry.FileName)
			if err != nil {
				return err
			}
			if err := g.copyNote(entry, content); err != nil {
				return err
			}
			html, page, err := pages.Render(cat, entry, content)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", entry.FileName, err)
			}
			if len(page.Missing) > 0 {
				log.Printf("site: %s: headings without anchors: %v", entry.ID, page.Missing)
			}
			out := filepath.Join(g.OutputDir, "read", entry.ID+".html")
			if err := os.WriteFile(out, html, 0o644); err != nil {
				return fmt.Errorf("site: %w", err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return len(cat), nil
}

// copyNote places the raw note where its catalog path points.
func (g *Generator) copyNote(entry catalog.Entry, content []byte) error {
	out := filepath.Join(g.OutputDir, filepath.FromSlash(entry.Path))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	return nil
}

// writeIndex writes index.html, which forwards to the first note.
func (g *Generator) writeIndex(cat catalog.Catalog) error {
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return fmt.Errorf("parsing index template: %w", err)
	}
	data := struct {
		SiteTitle string
		First     string
	}{SiteTitle: g.SiteTitle}
	if first, ok := cat.Resolve(""); ok {
		data.First = "read/" + first.ID + ".html"
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.OutputDir, "index.html"), buf.Bytes(), 0o644)
}
