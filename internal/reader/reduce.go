package reader

import (
	"fmt"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/loader"
	"github.com/ziadkadry99/notebook/internal/toc"
)

// Reduce applies ev to s and returns the next state with the side effects
// the runtime must perform. s is not modified.
func Reduce(s State, ev Event) (State, []Command) {
	next := s.Clone()

	switch ev := ev.(type) {
	case CatalogLoaded:
		next.Catalog = append(catalog.Catalog(nil), ev.Catalog...)
		next.CatalogStatus = CatalogReady
		next.Banner = ""
		if next.HasPending {
			id := next.Pending
			next.Pending, next.HasPending = "", false
			return Reduce(next, DocumentSelected{ID: id})
		}
		return next, nil

	case CatalogFailed:
		next.CatalogStatus = CatalogError
		next.Banner = fmt.Sprintf("Failed to load notes index: %v", ev.Err)
		return next, nil

	case DocumentSelected:
		return selectDocument(next, ev.ID)

	case DocumentLoaded:
		if ev.Seq != next.Seq || ev.ID != next.CurrentID || next.Status != StatusLoading {
			return s, nil
		}
		return mount(next, ev.Text, StatusReady)

	case DocumentFailed:
		if ev.Seq != next.Seq || ev.ID != next.CurrentID || next.Status != StatusLoading {
			return s, nil
		}
		if loader.KindOf(ev.Err) == loader.KindNotFound {
			return mount(next, NotFoundBody, StatusNotFound)
		}
		next.Status = StatusError
		next.Banner = fmt.Sprintf("Could not load %s: %v", ev.ID, ev.Err)
		return next, nil

	case HeadingEngaged:
		if next.ShownID == "" || !next.Spy.Engage(ev.Gen, ev.Slugs...) {
			return s, nil
		}
		return next, nil

	case TOCEntryClicked:
		if next.ShownID == "" {
			return s, nil
		}
		h, ok := toc.NewIndex(next.TOC).Resolve(ev.Slug)
		if !ok {
			return s, nil
		}
		next.Spy.Click(h.Slug)
		if next.Mobile() {
			next.SidebarOpen = false
		}
		return next, []Command{ScrollTo{Slug: h.Slug}}

	case SidebarSet:
		next.SidebarOpen = ev.Open
		return next, nil

	case EntryToggled:
		next.Expanded[ev.ID] = !next.Expanded[ev.ID]
		return next, nil

	case ViewportResized:
		next.Width = ev.Width
		return next, nil
	}

	return s, nil
}

func selectDocument(next State, id string) (State, []Command) {
	if next.CatalogStatus != CatalogReady {
		next.Pending, next.HasPending = id, true
		return next, nil
	}

	var cmds []Command
	if id == "" {
		first, ok := next.Catalog.Resolve("")
		if !ok {
			next.Status = StatusIdle
			next.Banner = "The notes index is empty."
			return next, nil
		}
		id = first.ID
		cmds = append(cmds, Redirect{ID: id})
	}

	next.CurrentID = id
	next.Expanded[id] = true
	next.Seq++

	entry, ok := next.Catalog.Lookup(id)
	if !ok {
		st, mountCmds := mount(next, NotFoundBody, StatusNotFound)
		return st, append(append(cmds, CancelFetch{}), mountCmds...)
	}

	next.Status = StatusLoading
	return next, append(cmds, FetchDocument{Entry: entry, Seq: next.Seq})
}

// mount installs freshly loaded content: the TOC is rebuilt, the active
// heading cleared and a new observation round started.
func mount(next State, text string, status Status) (State, []Command) {
	body := string(catalog.StripFrontMatter([]byte(text)))
	next.Status = status
	next.ShownID = next.CurrentID
	next.Content = body
	next.TOC = toc.Extract(body)
	next.Banner = ""
	gen := next.Spy.Reset()
	if next.Mobile() {
		next.SidebarOpen = false
	}
	return next, []Command{
		ResetScroll{},
		Observe{Gen: gen, Slugs: next.TOC.Slugs()},
	}
}
