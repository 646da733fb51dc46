package toc

import (
	"net/url"
	"strings"

	"github.com/ziadkadry99/notebook/internal/slug"
)

// Index maps slugs and source lines back to headings of one TOC.
type Index struct {
	toc    TOC
	bySlug map[string]int
	byLine map[int]int
}

// NewIndex builds the lookup tables for t.
func NewIndex(t TOC) *Index {
	idx := &Index{
		toc:    t,
		bySlug: make(map[string]int, len(t)),
		byLine: make(map[int]int, len(t)),
	}
	for i, h := range t {
		idx.bySlug[h.Slug] = i
		idx.byLine[h.Line] = i
	}
	return idx
}

// TOC returns the indexed headings.
func (x *Index) TOC() TOC { return x.toc }

// Position returns the position of slug within the TOC.
func (x *Index) Position(s string) (int, bool) {
	i, ok := x.bySlug[s]
	return i, ok
}

// AtLine returns the heading found on the given 1-based source line.
func (x *Index) AtLine(line int) (Heading, bool) {
	i, ok := x.byLine[line]
	if !ok {
		return Heading{}, false
	}
	return x.toc[i], true
}

// Resolve finds the heading a URL fragment points at. An exact slug match
// wins; otherwise the fragment and every title are normalized with the slug
// algorithm and the first match in document order is returned.
func (x *Index) Resolve(fragment string) (Heading, bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}
	if i, ok := x.bySlug[fragment]; ok {
		return x.toc[i], true
	}

	want := slug.Normalize(fragment)
	if want == "" {
		return Heading{}, false
	}
	if i, ok := x.bySlug[want]; ok {
		return x.toc[i], true
	}
	for _, h := range x.toc {
		if slug.Normalize(h.Title) == want {
			return h, true
		}
	}
	return Heading{}, false
}
