// Package reader holds the reading view's state: the catalog, the selected
// note, its table of contents and the active heading. State only changes
// through Reduce, and a Session applies events to it on a single goroutine.
package reader

import (
	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/spy"
	"github.com/ziadkadry99/notebook/internal/toc"
)

// DefaultBreakpoint is the viewport width below which the sidebar behaves
// as a mobile drawer.
const DefaultBreakpoint = 1024

// NotFoundBody is the content shown for an id that is not in the catalog.
const NotFoundBody = "# 404\nProject not found."

// Status is the load state of the selected note.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusNotFound
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusNotFound:
		return "not-found"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// CatalogStatus is the load state of the catalog.
type CatalogStatus int

const (
	CatalogPending CatalogStatus = iota
	CatalogReady
	CatalogError
)

// State is one snapshot of the reading view.
type State struct {
	Catalog       catalog.Catalog
	CatalogStatus CatalogStatus

	// CurrentID is the selected note. Pending holds a selection made
	// before the catalog arrived.
	CurrentID  string
	Pending    string
	HasPending bool

	// ShownID is the note whose Content and TOC are on screen. It lags
	// CurrentID while a load is in flight or after one failed.
	ShownID string
	Status  Status
	Content string
	TOC     toc.TOC
	Banner  string

	SidebarOpen bool
	Expanded    map[string]bool
	Width       int
	Breakpoint  int

	// Seq identifies the fetch whose result the state is waiting for.
	Seq uint64
	Spy spy.Spy
}

// NewState returns the initial state: catalog pending, sidebar open.
func NewState() State {
	return State{
		SidebarOpen: true,
		Expanded:    map[string]bool{},
		Breakpoint:  DefaultBreakpoint,
	}
}

// Active returns the slug of the heading in view.
func (s State) Active() (string, bool) { return s.Spy.Active() }

// Chapters returns the TOC entries shown in the sidebar.
func (s State) Chapters() toc.TOC { return s.TOC.Chapters() }

// Mobile reports whether the viewport is narrower than the breakpoint.
func (s State) Mobile() bool {
	return s.Width > 0 && s.Width < s.Breakpoint
}

// IsExpanded reports whether an entry's chapter list is open. The selected
// entry is always expanded.
func (s State) IsExpanded(id string) bool {
	return s.Expanded[id] || id == s.CurrentID
}

// Entry returns the selected catalog entry.
func (s State) Entry() (catalog.Entry, bool) {
	return s.Catalog.Lookup(s.CurrentID)
}

// Neighbors returns the previous and next entries of the selected note.
func (s State) Neighbors() (prev, next *catalog.Entry) {
	return catalog.Neighbors(s.Catalog, s.CurrentID)
}

// Clone returns a copy of s that shares no mutable storage with it.
func (s State) Clone() State {
	out := s
	out.Expanded = make(map[string]bool, len(s.Expanded))
	for k, v := range s.Expanded {
		out.Expanded[k] = v
	}
	out.TOC = append(toc.TOC(nil), s.TOC...)
	out.Catalog = append(catalog.Catalog(nil), s.Catalog...)
	return out
}
