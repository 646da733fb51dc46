package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ziadkadry99/notebook/internal/walker"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before rebuilding.
const DefaultDebounce = 100 * time.Millisecond

// Watcher rebuilds the catalog whenever a note in a DirSource changes.
type Watcher struct {
	Source   DirSource
	Options  Options
	Debounce time.Duration
	// OnBuild receives every rebuilt catalog, or the error that prevented it.
	OnBuild func(Catalog, error)
}

// Run watches the notes directory until ctx is done. It returns only after
// any rebuild in progress has finished.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.Source.Dir); err != nil {
		return fmt.Errorf("%w: watching %s: %w", ErrSourceUnavailable, w.Source.Dir, err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	include := w.Source.Include
	if len(include) == 0 {
		include = walker.DefaultInclude
	}

	// Rebuilds run one at a time on a single worker. Triggers that arrive
	// during a build coalesce into one follow-up build.
	trigger := make(chan string, 1)
	workerCtx, stopWorker := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildLoop(workerCtx, trigger)
	}()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		stopWorker()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !walker.MatchesInclude(name, include) || walker.MatchesExclude(name, w.Source.Exclude) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- name:
				default:
				}
			})
			mu.Unlock()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog: watcher error: %v", err)
		}
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context, trigger <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case name := <-trigger:
			log.Printf("catalog: change detected: %s", name)
			cat, err := Build(ctx, w.Source, w.Options)
			if ctx.Err() != nil {
				return
			}
			if w.OnBuild != nil {
				w.OnBuild(cat, err)
			}
		}
	}
}
