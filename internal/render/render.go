// Package render turns a note's markdown into HTML whose heading anchors
// are exactly the slugs of the note's table of contents.
package render

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/toc"
)

// DefaultStyle is the chroma style used for fenced code.
const DefaultStyle = "github"

// Page is one rendered note.
type Page struct {
	HTML string
	TOC  toc.TOC
	// Missing lists TOC slugs that no rendered heading carries, e.g. a
	// heading-like line inside a raw HTML block.
	Missing []string
}

// Renderer converts notes to HTML. It is safe for concurrent use.
type Renderer struct {
	md         goldmark.Markdown
	linkBase   string
	linkSuffix string
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	style      string
	linkBase   string
	linkSuffix string
}

// WithStyle sets the syntax highlighting style.
func WithStyle(style string) Option {
	return func(o *options) { o.style = style }
}

// WithLinkBase rewrites relative links to other notes ("page-01.md#x")
// into links under base ("/read/page-01#x"). Empty leaves links alone.
func WithLinkBase(base string) Option {
	return func(o *options) { o.linkBase = base }
}

// WithLinkSuffix appends suffix to rewritten note links, e.g. ".html" for
// a static site.
func WithLinkSuffix(suffix string) Option {
	return func(o *options) { o.linkSuffix = suffix }
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	o := options{style: DefaultStyle}
	for _, opt := range opts {
		opt(&o)
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(o.style),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md, linkBase: o.linkBase, linkSuffix: o.linkSuffix}
}

// Render converts source to a Page. Front matter is not rendered.
func (r *Renderer) Render(source []byte) (Page, error) {
	body := catalog.StripFrontMatter(source)
	contents := toc.Extract(string(body))
	idx := toc.NewIndex(contents)

	doc := r.md.Parser().Parse(text.NewReader(body))

	assigned := make(map[string]bool, len(contents))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level > 3 || n.Lines().Len() == 0 {
				return ast.WalkContinue, nil
			}
			line := bytes.Count(body[:n.Lines().At(0).Start], []byte("\n")) + 1
			if h, ok := idx.AtLine(line); ok {
				n.SetAttributeString("id", []byte(h.Slug))
				assigned[h.Slug] = true
			}
		case *ast.Link:
			if r.linkBase != "" {
				if dest, ok := noteLink(r.linkBase, r.linkSuffix, string(n.Destination)); ok {
					n.Destination = []byte(dest)
				}
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Page{}, fmt.Errorf("render: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, body, doc); err != nil {
		return Page{}, fmt.Errorf("render: %w", err)
	}

	var missing []string
	for _, h := range contents {
		if !assigned[h.Slug] {
			missing = append(missing, h.Slug)
		}
	}

	return Page{
		HTML:    buf.String(),
		TOC:     contents,
		Missing: missing,
	}, nil
}

// noteLink maps a relative link to a markdown file onto base.
func noteLink(base, suffix, dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	if path.Ext(u.Path) != ".md" {
		return "", false
	}
	out := strings.TrimSuffix(base, "/") + "/" + catalog.IDFromFileName(path.Base(u.Path)) + suffix
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out, true
}
