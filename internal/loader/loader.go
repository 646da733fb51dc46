package loader

import (
	"context"
	"sync"

	"github.com/ziadkadry99/notebook/internal/catalog"
)

// Result is the content of one completed load.
type Result struct {
	Entry catalog.Entry
	Seq   uint64
	Text  string
}

// Loader keeps at most one load of interest in flight. Starting a load
// cancels the previous one, and a load that completes after being replaced
// reports ErrSuperseded instead of its content.
type Loader struct {
	fetcher Fetcher

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// New returns a Loader backed by f.
func New(f Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Begin registers a new selection and returns its sequence number and a
// context that is canceled when a later selection begins.
func (l *Loader) Begin(ctx context.Context) (uint64, context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	return l.seq, ctx
}

// Cancel abandons the in-flight load, if any, without starting a new one.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}

// Current reports whether seq is the latest selection.
func (l *Loader) Current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq
}

// Load fetches entry as a new selection.
func (l *Loader) Load(ctx context.Context, entry catalog.Entry) (Result, error) {
	seq, ctx := l.Begin(ctx)
	return l.Fetch(ctx, seq, entry)
}

// Fetch runs the fetch for a selection started with Begin.
func (l *Loader) Fetch(ctx context.Context, seq uint64, entry catalog.Entry) (Result, error) {
	data, err := l.fetcher.Fetch(ctx, entry)
	if !l.Current(seq) {
		return Result{}, ErrSuperseded
	}
	if err != nil {
		if KindOf(err) == 0 {
			err = Transport(entry.ID, err)
		}
		return Result{}, err
	}
	return Result{Entry: entry, Seq: seq, Text: string(data)}, nil
}
