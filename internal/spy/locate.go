package spy

import (
	"github.com/ziadkadry99/notebook/internal/slug"
	"github.com/ziadkadry99/notebook/internal/toc"
)

// Locate finds the observed target for slug s. The exact anchor is looked up
// first. If it is missing, s is resolved through the TOC index and the
// target is matched by recomputing slugs from heading titles; this only
// matters when the rendered anchors and the TOC have drifted apart.
func Locate(idx *toc.Index, targets []Target, s string) (Target, bool) {
	for _, t := range targets {
		if t.Slug == s {
			return t, true
		}
	}
	if idx == nil {
		return Target{}, false
	}
	h, ok := idx.Resolve(s)
	if !ok {
		return Target{}, false
	}
	want := slug.Normalize(h.Title)
	for _, t := range targets {
		if t.Slug == h.Slug || slug.Normalize(t.Slug) == want {
			return t, true
		}
	}
	return Target{}, false
}

// ScrollOffset returns the scroll position that places target a fixed
// margin below the top of the viewport.
func ScrollOffset(t Target, margin float64) float64 {
	top := t.Offset - margin
	if top < 0 {
		return 0
	}
	return top
}
