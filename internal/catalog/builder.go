package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultPathPrefix is prepended to a note's file name to form Entry.Path.
const DefaultPathPrefix = "/notes/"

// DefaultConcurrency bounds parallel note reads when Options leaves it unset.
const DefaultConcurrency = 4

// Options tunes Build.
type Options struct {
	// PathPrefix is prepended to file names (default DefaultPathPrefix).
	PathPrefix string
	// Concurrency bounds parallel reads (default DefaultConcurrency).
	Concurrency int
	// Progress, if set, is called once per note read.
	Progress func(done, total int, fileName string)
}

// Build reads every note from src and returns the catalog sorted by file
// name. It fails if the source cannot be listed or any note cannot be read.
// Running it twice over unchanged notes yields an identical catalog.
func Build(ctx context.Context, src Source, opts Options) (Catalog, error) {
	names, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	names = append([]string(nil), names...)
	sort.Strings(names)

	prefix := opts.PathPrefix
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	seen := make(map[string]string, len(names))
	for _, name := range names {
		id := IDFromFileName(name)
		if other, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q from %s and %s", ErrDuplicateID, id, other, name)
		}
		seen[id] = name
	}

	cat := make(Catalog, len(names))
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, name := range names {
		g.Go(func() error {
			content, err := src.Read(gctx, name)
			if err != nil {
				return fmt.Errorf("reading note %s: %w", name, err)
			}
			id := IDFromFileName(name)
			cat[i] = Entry{
				ID:       id,
				FileName: name,
				Title:    Title(content, id),
				Path:     prefix + name,
			}
			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(names), name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return cat, nil
}
