package cmd

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/loader"
	"github.com/ziadkadry99/notebook/internal/reader"
)

var readCatalog = catalog.Catalog{
	{ID: "page-00", Title: "# Project 0: Boot", Path: "/notes/page-00.md"},
	{ID: "page-01", Title: "# Project 1: Threads", Path: "/notes/page-01.md"},
}

var readNotes = loader.MapFetcher{
	"page-00": "# Project 0: Boot\n\n## Setup\n\n### Running QEMU\n",
	"page-01": "# Project 1: Threads\n\n## Alarm Clock\n",
}

func staticCatalog(c catalog.Catalog, err error) func(context.Context) (catalog.Catalog, error) {
	return func(context.Context) (catalog.Catalog, error) { return c, err }
}

func openWithTimeout(t *testing.T, fetch func(context.Context) (catalog.Catalog, error), id, fragment string) (reader.State, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return openNote(ctx, readNotes, fetch, id, fragment)
}

func TestOpenNote(t *testing.T) {
	st, err := openWithTimeout(t, staticCatalog(readCatalog, nil), "page-01", "")
	if err != nil {
		t.Fatalf("openNote: %v", err)
	}
	if st.Status != reader.StatusReady || st.CurrentID != "page-01" {
		t.Fatalf("got %v %q", st.Status, st.CurrentID)
	}

	var buf bytes.Buffer
	printNote(&buf, st)
	out := buf.String()
	for _, want := range []string{"# Project 1: Threads (page-01)", "Alarm Clock  #alarm-clock", "Previous: # Project 0: Boot (page-00)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Next:") {
		t.Errorf("last note should have no next:\n%s", out)
	}
}

func TestOpenNoteRedirectsToFirst(t *testing.T) {
	var mu sync.Mutex
	fetched := map[string]int{}
	counting := loader.FetcherFunc(func(ctx context.Context, entry catalog.Entry) ([]byte, error) {
		mu.Lock()
		fetched[entry.ID]++
		mu.Unlock()
		return readNotes.Fetch(ctx, entry)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := openNote(ctx, counting, staticCatalog(readCatalog, nil), "", "")
	if err != nil {
		t.Fatalf("openNote: %v", err)
	}
	if st.CurrentID != "page-00" {
		t.Errorf("opened %q, want page-00", st.CurrentID)
	}

	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(fetched, map[string]int{"page-00": 1}) {
		t.Errorf("fetches = %v, want one for page-00", fetched)
	}
}

func TestOpenNoteFragment(t *testing.T) {
	st, err := openWithTimeout(t, staticCatalog(readCatalog, nil), "page-00", "Running QEMU")
	if err != nil {
		t.Fatalf("openNote: %v", err)
	}
	active, ok := st.Active()
	if !ok || active != "running-qemu" {
		t.Errorf("active = %q, %v", active, ok)
	}

	var buf bytes.Buffer
	printNote(&buf, st)
	if !strings.Contains(buf.String(), ">     Running QEMU  #running-qemu") {
		t.Errorf("active heading not marked:\n%s", buf.String())
	}
}

func TestOpenNoteUnknown(t *testing.T) {
	st, err := openWithTimeout(t, staticCatalog(readCatalog, nil), "page-99", "")
	if err != nil {
		t.Fatalf("openNote: %v", err)
	}
	if st.Status != reader.StatusNotFound || st.Content != reader.NotFoundBody {
		t.Errorf("got %v %q", st.Status, st.Content)
	}
}

func TestOpenNoteEmptyCatalog(t *testing.T) {
	st, err := openWithTimeout(t, staticCatalog(catalog.Catalog{}, nil), "", "")
	if err != nil {
		t.Fatalf("openNote: %v", err)
	}
	if st.Status != reader.StatusIdle || st.Banner == "" {
		t.Errorf("got %v %q", st.Status, st.Banner)
	}
}

func TestOpenNoteCatalogFailure(t *testing.T) {
	_, err := openWithTimeout(t, staticCatalog(nil, errors.New("connection refused")), "page-00", "")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("err = %v", err)
	}
}
