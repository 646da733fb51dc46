package site

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/notebook/internal/catalog"
)

func TestPageRendererHrefAndUnknownEntry(t *testing.T) {
	cat := catalog.Catalog{
		{ID: "a", Title: "Alpha"},
		{ID: "b", Title: "Beta"},
	}
	p, err := NewPageRenderer(PageOptions{
		SiteTitle: "Notes",
		BasePath:  "/",
		Href:      func(id string) string { return "/read/" + id },
		Reload:    true,
	})
	if err != nil {
		t.Fatal(err)
	}

	html, page, err := p.Render(cat, catalog.Entry{ID: "ghost", Title: "404"}, []byte("# 404\nProject not found."))
	if err != nil {
		t.Fatal(err)
	}
	out := string(html)
	if strings.Contains(out, `entry active`) {
		t.Error("unknown entry should not mark any sidebar entry active")
	}
	if strings.Contains(out, `class="prev"`) || strings.Contains(out, `class="next"`) {
		t.Error("unknown entry should have no neighbors")
	}
	if !strings.Contains(out, `href="/read/b"`) || !strings.Contains(out, `href="/style.css"`) {
		t.Error("custom href and base path not applied")
	}
	if !strings.Contains(out, `"reload":true`) {
		t.Error("reload flag missing from page config")
	}
	if len(page.TOC) != 1 || page.TOC[0].Slug != "404" {
		t.Errorf("TOC = %+v", page.TOC)
	}
}

func TestAsset(t *testing.T) {
	for _, name := range []string{"style.css", "script.js"} {
		if data, ok := Asset(name); !ok || len(data) == 0 {
			t.Errorf("Asset(%q) missing", name)
		}
	}
	if _, ok := Asset("other.js"); ok {
		t.Error("unexpected asset")
	}
}
