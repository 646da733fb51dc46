package site

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/render"
	"github.com/ziadkadry99/notebook/internal/slug"
	"github.com/ziadkadry99/notebook/internal/spy"
	"github.com/ziadkadry99/notebook/internal/toc"
)

// PageOptions configures a PageRenderer.
type PageOptions struct {
	SiteTitle  string
	Band       spy.Band
	Breakpoint int
	// BasePath prefixes the stylesheet and script URLs.
	BasePath string
	// Href returns the link to the page of a note id.
	Href func(id string) string
	// Reload makes pages reconnect to /ws/reload and refresh on catalog
	// changes.
	Reload   bool
	Renderer *render.Renderer
}

// PageRenderer fills the page template for one note at a time. It is safe
// for concurrent use.
type PageRenderer struct {
	opts PageOptions
	tmpl *template.Template
}

// NewPageRenderer parses the page template.
func NewPageRenderer(opts PageOptions) (*PageRenderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	if !opts.Band.Valid() || opts.Band == (spy.Band{}) {
		opts.Band = spy.DefaultBand
	}
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}
	if opts.Href == nil {
		opts.Href = func(id string) string { return id + ".html" }
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New()
	}
	return &PageRenderer{opts: opts, tmpl: tmpl}, nil
}

// navEntry is one catalog entry in the sidebar.
type navEntry struct {
	ID       string
	Title    string
	Href     string
	Active   bool
	Chapters toc.TOC
}

// pageScript is handed to script.js as window.NOTEBOOK.
type pageScript struct {
	RootMargin string            `json:"rootMargin"`
	Breakpoint int               `json:"breakpoint"`
	Aliases    map[string]string `json:"aliases"`
	Reload     bool              `json:"reload"`
}

// pageData holds the data passed to the page template.
type pageData struct {
	Title     string
	SiteTitle string
	Content   template.HTML
	Entries   []navEntry
	Prev      *navEntry
	Next      *navEntry
	BasePath  string
	Script    pageScript
}

// Render returns the full HTML page for entry with the given raw content.
// entry need not be in cat; such a page has no active sidebar entry and no
// neighbors.
func (p *PageRenderer) Render(cat catalog.Catalog, entry catalog.Entry, content []byte) ([]byte, render.Page, error) {
	page, err := p.opts.Renderer.Render(content)
	if err != nil {
		return nil, render.Page{}, err
	}

	entries := make([]navEntry, len(cat))
	for i, e := range cat {
		entries[i] = p.nav(e)
		if e.ID == entry.ID {
			entries[i].Active = true
			entries[i].Chapters = page.TOC.Chapters()
		}
	}

	data := pageData{
		Title:     entry.Title,
		SiteTitle: p.opts.SiteTitle,
		Content:   template.HTML(page.HTML),
		Entries:   entries,
		BasePath:  p.opts.BasePath,
		Script: pageScript{
			RootMargin: p.opts.Band.RootMargin(),
			Breakpoint: p.opts.Breakpoint,
			Aliases:    aliases(page.TOC),
			Reload:     p.opts.Reload,
		},
	}
	prev, next := catalog.Neighbors(cat, entry.ID)
	if prev != nil {
		n := p.nav(*prev)
		data.Prev = &n
	}
	if next != nil {
		n := p.nav(*next)
		data.Next = &n
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return nil, render.Page{}, err
	}
	return buf.Bytes(), page, nil
}

func (p *PageRenderer) nav(e catalog.Entry) navEntry {
	return navEntry{ID: e.ID, Title: e.Title, Href: p.opts.Href(e.ID)}
}

// aliases maps normalized heading titles to the first slug carrying them,
// so that fragments written by hand ("#Running QEMU") still find their
// heading in the browser.
func aliases(t toc.TOC) map[string]string {
	out := make(map[string]string)
	for _, h := range t {
		n := slug.Normalize(h.Title)
		if n == "" {
			continue
		}
		if _, ok := out[n]; !ok {
			out[n] = h.Slug
		}
	}
	return out
}

// Asset returns the shared stylesheet or page script by file name.
func Asset(name string) ([]byte, bool) {
	switch name {
	case "style.css":
		return []byte(cssContent), true
	case "script.js":
		return []byte(jsContent), true
	}
	return nil, false
}
