package reader

import "github.com/ziadkadry99/notebook/internal/catalog"

// Event is an input to Reduce.
type Event interface{ isEvent() }

// CatalogLoaded delivers the catalog fetched at startup.
type CatalogLoaded struct{ Catalog catalog.Catalog }

// CatalogFailed reports that the catalog could not be fetched.
type CatalogFailed struct{ Err error }

// DocumentSelected is a navigation to a note id; empty means the first note.
type DocumentSelected struct{ ID string }

// DocumentLoaded delivers the content of the fetch numbered Seq.
type DocumentLoaded struct {
	ID   string
	Seq  uint64
	Text string
}

// DocumentFailed reports that the fetch numbered Seq failed.
type DocumentFailed struct {
	ID  string
	Seq uint64
	Err error
}

// HeadingEngaged reports headings that entered the engaged band during
// observation round Gen.
type HeadingEngaged struct {
	Gen   uint64
	Slugs []string
}

// TOCEntryClicked is a click on a sidebar chapter.
type TOCEntryClicked struct{ Slug string }

// SidebarSet opens or closes the sidebar.
type SidebarSet struct{ Open bool }

// EntryToggled expands or collapses one catalog entry in the sidebar.
type EntryToggled struct{ ID string }

// ViewportResized reports the new viewport width.
type ViewportResized struct{ Width int }

func (CatalogLoaded) isEvent()    {}
func (CatalogFailed) isEvent()    {}
func (DocumentSelected) isEvent() {}
func (DocumentLoaded) isEvent()   {}
func (DocumentFailed) isEvent()   {}
func (HeadingEngaged) isEvent()   {}
func (TOCEntryClicked) isEvent()  {}
func (SidebarSet) isEvent()       {}
func (EntryToggled) isEvent()     {}
func (ViewportResized) isEvent()  {}

// Command is a side effect requested by Reduce.
type Command interface{ isCommand() }

// FetchDocument asks the runtime to fetch Entry and report it under Seq.
type FetchDocument struct {
	Entry catalog.Entry
	Seq   uint64
}

// CancelFetch abandons any fetch in flight.
type CancelFetch struct{}

// Redirect replaces the addressed id, e.g. when no id was given.
type Redirect struct{ ID string }

// ResetScroll moves the reading pane back to the top.
type ResetScroll struct{}

// ScrollTo scrolls the reading pane to the heading with Slug.
type ScrollTo struct{ Slug string }

// Observe asks the view to attach the scroll-spy observer to the freshly
// rendered headings for observation round Gen.
type Observe struct {
	Gen   uint64
	Slugs []string
}

func (FetchDocument) isCommand() {}
func (CancelFetch) isCommand()   {}
func (Redirect) isCommand()      {}
func (ResetScroll) isCommand()   {}
func (ScrollTo) isCommand()      {}
func (Observe) isCommand()       {}
