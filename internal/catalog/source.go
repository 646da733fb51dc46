package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/ziadkadry99/notebook/internal/walker"
)

// Source supplies the raw notes a catalog is built from.
type Source interface {
	// List returns the file names of all notes.
	List(ctx context.Context) ([]string, error)
	// Read returns the raw content of one note.
	Read(ctx context.Context, fileName string) ([]byte, error)
}

// DirSource reads notes from a flat directory on disk.
type DirSource struct {
	Dir     string
	Include []string // Defaults to walker.DefaultInclude.
	Exclude []string
}

// List implements Source.
func (s DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir:  s.Dir,
		Include:  s.Include,
		Exclude:  s.Exclude,
		SkipHash: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: notes directory %s: %w", ErrSourceUnavailable, s.Dir, err)
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.RelPath
	}
	return names, nil
}

// Read implements Source.
func (s DirSource) Read(ctx context.Context, fileName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(fileName)))
}

// FSSource reads notes from the top level of Dir inside an fs.FS.
type FSSource struct {
	FS      fs.FS
	Dir     string // Defaults to ".".
	Include []string
}

func (s FSSource) dir() string {
	if s.Dir == "" {
		return "."
	}
	return s.Dir
}

// List implements Source.
func (s FSSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.FS, s.dir())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, s.dir(), err)
	}
	include := s.Include
	if len(include) == 0 {
		include = walker.DefaultInclude
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !walker.MatchesInclude(e.Name(), include) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read implements Source.
func (s FSSource) Read(ctx context.Context, fileName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.FS, path.Join(s.dir(), fileName))
}
