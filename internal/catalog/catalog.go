// Package catalog builds and navigates the ordered list of notes that drives
// document discovery and chapter order.
package catalog

import "errors"

var (
	// ErrSourceUnavailable reports a missing or unreadable notes directory or
	// catalog file.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrDuplicateID reports two notes whose file names share a base name.
	ErrDuplicateID = errors.New("duplicate note id")
)

// Entry is one note in the catalog.
type Entry struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Title    string `json:"title"`
	Path     string `json:"path"`
}

// Catalog is the list of entries sorted by FileName. Its order is the
// chapter order. A Catalog is never modified after Build returns it.
type Catalog []Entry

// Index returns the position of id in c, or -1.
func (c Catalog) Index(id string) int {
	for i, e := range c {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Lookup returns the entry with the given id.
func (c Catalog) Lookup(id string) (Entry, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return Entry{}, false
}

// Resolve maps a requested id to an entry. An empty id selects the first
// entry; an unknown id reports ok=false.
func (c Catalog) Resolve(id string) (Entry, bool) {
	if id == "" {
		if len(c) == 0 {
			return Entry{}, false
		}
		return c[0], true
	}
	return c.Lookup(id)
}

// IDs returns the entry ids in catalog order.
func (c Catalog) IDs() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.ID
	}
	return out
}

// Neighbors returns the entries before and after id in catalog order. Either
// is nil at the ends of the catalog, and both are nil for an unknown id.
func Neighbors(c Catalog, id string) (prev, next *Entry) {
	i := c.Index(id)
	if i < 0 {
		return nil, nil
	}
	if i > 0 {
		p := c[i-1]
		prev = &p
	}
	if i < len(c)-1 {
		n := c[i+1]
		next = &n
	}
	return prev, next
}
