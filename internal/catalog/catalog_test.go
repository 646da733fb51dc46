package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"
)

func notesDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "notes"))
	if err != nil {
		t.Fatalf("resolve testdata path: %v", err)
	}
	return abs
}

func writeNotes(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBuildFromTestdata(t *testing.T) {
	cat, err := Build(context.Background(), DirSource{Dir: notesDir(t)}, Options{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := Catalog{
		{ID: "page-00", FileName: "page-00.md", Title: "Project 0: Boot", Path: "/notes/page-00.md"},
		{ID: "page-01", FileName: "page-01.md", Title: "Project 1: Kernel", Path: "/notes/page-01.md"},
		{ID: "page-02", FileName: "page-02.md", Title: "page-02", Path: "/notes/page-02.md"},
		{ID: "page-03", FileName: "page-03.md", Title: "Project 3 - Interrupts", Path: "/notes/page-03.md"},
	}
	if !reflect.DeepEqual(cat, want) {
		t.Errorf("Build() =\n%+v\nwant\n%+v", cat, want)
	}
}

func TestBuildOrderingAndIDs(t *testing.T) {
	files := map[string]string{
		"b.md":        "# B",
		"a.md":        "# A",
		"10-intro.md": "# Ten",
		"2-setup.md":  "# Two",
		"Zeta.md":     "# Zeta",
		"a.b.md":      "# Dotted",
	}
	cat, err := Build(context.Background(), DirSource{Dir: writeNotes(t, files)}, Options{Concurrency: 2})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var names []string
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(cat) != len(names) {
		t.Fatalf("got %d entries, want %d", len(cat), len(names))
	}
	for i, e := range cat {
		if e.FileName != names[i] {
			t.Errorf("entry %d: fileName %q, want %q", i, e.FileName, names[i])
		}
		if e.ID != IDFromFileName(names[i]) {
			t.Errorf("entry %d: id %q, want %q", i, e.ID, IDFromFileName(names[i]))
		}
	}
	if cat[3].ID != "a.b" {
		t.Errorf("id of a.b.md = %q, want %q", cat[3].ID, "a.b")
	}
}

func TestBuildIdempotent(t *testing.T) {
	src := DirSource{Dir: notesDir(t)}
	first, err := Build(context.Background(), src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(context.Background(), src, Options{Concurrency: 1})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := Marshal(first)
	b, _ := Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("rebuilding unchanged notes should produce identical catalog bytes")
	}
}

func TestBuildMissingSource(t *testing.T) {
	_, err := Build(context.Background(), DirSource{Dir: filepath.Join(t.TempDir(), "missing")}, Options{})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestBuildDuplicateID(t *testing.T) {
	dir := writeNotes(t, map[string]string{"a.md": "# A", "a.markdown": "# A again"})
	_, err := Build(context.Background(), DirSource{Dir: dir, Include: []string{"*.md", "*.markdown"}}, Options{})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestBuildPathPrefixAndProgress(t *testing.T) {
	dir := writeNotes(t, map[string]string{"one.md": "# 1", "two.md": "# 2", "three.md": "# 3"})

	var (
		mu    sync.Mutex
		calls []int
	)
	cat, err := Build(context.Background(), DirSource{Dir: dir}, Options{
		PathPrefix: "/docs",
		Progress: func(done, total int, _ string) {
			mu.Lock()
			defer mu.Unlock()
			if total != 3 {
				t.Errorf("total = %d, want 3", total)
			}
			calls = append(calls, done)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cat[0].Path != "/docs/one.md" {
		t.Errorf("path = %q, want /docs/one.md", cat[0].Path)
	}
	if !reflect.DeepEqual(calls, []int{1, 2, 3}) {
		t.Errorf("progress calls = %v, want [1 2 3]", calls)
	}
}

func TestBuildFSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"notes/b.md":     {Data: []byte("# Bee\n")},
		"notes/a.md":     {Data: []byte("\n")},
		"notes/skip.txt": {Data: []byte("x")},
		"notes/sub/c.md": {Data: []byte("# nested")},
	}
	cat, err := Build(context.Background(), FSSource{FS: fsys, Dir: "notes"}, Options{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	want := Catalog{
		{ID: "a", FileName: "a.md", Title: "a", Path: "/notes/a.md"},
		{ID: "b", FileName: "b.md", Title: "Bee", Path: "/notes/b.md"},
	}
	if !reflect.DeepEqual(cat, want) {
		t.Errorf("Build() = %+v, want %+v", cat, want)
	}

	if _, err := Build(context.Background(), FSSource{FS: fsys, Dir: "nope"}, Options{}); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable for missing fs dir, got %v", err)
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, DirSource{Dir: notesDir(t)}, Options{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"# Hello\n\nbody", "Hello"},
		{"#Hello", "Hello"},
		{"## Sub\n", "# Sub"},
		{"Plain first line\n# Heading", "Plain first line"},
		{"# Title\r\nmore", "Title"},
		{"   \n# Later", "fallback"},
		{"#   \n", "fallback"},
		{"", "fallback"},
		{"\xef\xbb\xbf# With BOM", "With BOM"},
		{"---\ntitle: From Front Matter\n---\n# Body Title\n", "From Front Matter"},
		{"---\nauthor: someone\n---\n# Body Title\n", "Body Title"},
	}
	for _, tt := range tests {
		got := Title([]byte(tt.content), "fallback")
		if got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestStripFrontMatter(t *testing.T) {
	got := string(StripFrontMatter([]byte("---\ntitle: x\n---\n## A\n")))
	if got != "## A\n" {
		t.Errorf("StripFrontMatter() = %q, want %q", got, "## A\n")
	}
	plain := "## A\n---\n"
	if got := string(StripFrontMatter([]byte(plain))); got != plain {
		t.Errorf("StripFrontMatter() changed content without front matter: %q", got)
	}
}

func TestWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "notes-index.json")
	cat := Catalog{{ID: "a", FileName: "a.md", Title: "中文 Title", Path: "/notes/a.md"}}

	if err := Write(path, cat); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "[\n  {\n    \"id\": \"a\",\n    \"fileName\": \"a.md\",\n    \"title\": \"中文 Title\",\n    \"path\": \"/notes/a.md\"\n  }\n]"
	if string(data) != want {
		t.Errorf("catalog file =\n%s\nwant\n%s", data, want)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(loaded, cat) {
		t.Errorf("Load() = %+v, want %+v", loaded, cat)
	}
}

func TestWriteEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := Write(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Errorf("empty catalog file = %q, want []", data)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Write(filepath.Join(blocker, "index.json"), Catalog{}); err == nil {
		t.Fatal("expected error writing below a regular file")
	}
}

func TestNeighbors(t *testing.T) {
	cat := Catalog{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	tests := []struct {
		id, prev, next string
	}{
		{"a", "", "b"},
		{"b", "a", "c"},
		{"c", "b", ""},
		{"missing", "", ""},
	}
	for _, tt := range tests {
		prev, next := Neighbors(cat, tt.id)
		if got := idOf(prev); got != tt.prev {
			t.Errorf("Neighbors(%q) prev = %q, want %q", tt.id, got, tt.prev)
		}
		if got := idOf(next); got != tt.next {
			t.Errorf("Neighbors(%q) next = %q, want %q", tt.id, got, tt.next)
		}
	}

	single := Catalog{{ID: "only"}}
	if p, n := Neighbors(single, "only"); p != nil || n != nil {
		t.Error("single-entry catalog should have no neighbors")
	}
}

func idOf(e *Entry) string {
	if e == nil {
		return ""
	}
	return e.ID
}

func TestResolve(t *testing.T) {
	cat := Catalog{{ID: "first"}, {ID: "second"}}
	if e, ok := cat.Resolve(""); !ok || e.ID != "first" {
		t.Errorf("Resolve(\"\") = (%q, %v), want first", e.ID, ok)
	}
	if e, ok := cat.Resolve("second"); !ok || e.ID != "second" {
		t.Errorf("Resolve(second) = (%q, %v)", e.ID, ok)
	}
	if _, ok := cat.Resolve("nope"); ok {
		t.Error("Resolve(nope) should fail")
	}
	if _, ok := (Catalog{}).Resolve(""); ok {
		t.Error("Resolve on empty catalog should fail")
	}
	if got := cat.IDs(); !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Errorf("IDs() = %v", got)
	}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := writeNotes(t, map[string]string{"a.md": "# A"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	built := make(chan Catalog, 4)
	w := &Watcher{
		Source:   DirSource{Dir: dir},
		Debounce: 20 * time.Millisecond,
		OnBuild: func(c Catalog, err error) {
			if err == nil {
				built <- c
			}
		},
	}
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-built:
			if len(c) == 2 {
				cancel()
				if err := <-errc; err != nil {
					t.Errorf("Run() error: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("watcher did not rebuild the catalog")
		}
	}
}

func TestWatcherSerializesRebuilds(t *testing.T) {
	dir := writeNotes(t, map[string]string{"a.md": "# A"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var inFlight, maxInFlight atomic.Int32
	built := make(chan Catalog, 16)
	w := &Watcher{
		Source:   DirSource{Dir: dir},
		Debounce: 10 * time.Millisecond,
		OnBuild: func(c Catalog, err error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			if n > maxInFlight.Load() {
				maxInFlight.Store(n)
			}
			time.Sleep(150 * time.Millisecond)
			if err == nil {
				built <- c
			}
		},
	}
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	for _, name := range []string{"b.md", "c.md", "d.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# "+name), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-built:
			if len(c) < 4 {
				continue
			}
			cancel()
			if err := <-errc; err != nil {
				t.Errorf("Run() error: %v", err)
			}
			if got := maxInFlight.Load(); got != 1 {
				t.Errorf("%d rebuilds overlapped", got)
			}
			return
		case <-deadline:
			t.Fatal("watcher never saw all four notes")
		}
	}
}

func TestWatcherRunWaitsForBuild(t *testing.T) {
	dir := writeNotes(t, map[string]string{"a.md": "# A"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{}, 1)
	var finished atomic.Bool
	w := &Watcher{
		Source:   DirSource{Dir: dir},
		Debounce: 10 * time.Millisecond,
		OnBuild: func(Catalog, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			time.Sleep(100 * time.Millisecond)
			finished.Store(true)
		},
	}
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild")
	}
	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run() error: %v", err)
	}
	if !finished.Load() {
		t.Error("Run returned while OnBuild was still running")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	w := &Watcher{Source: DirSource{Dir: filepath.Join(t.TempDir(), "gone")}}
	if err := w.Run(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
