package reader

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/loader"
)

// Session runs the reducer on a single goroutine and performs the fetches
// it asks for. View commands (scrolling, redirects, observer wiring) are
// handed to OnCommand on the same goroutine.
type Session struct {
	// OnCommand, if set, receives every command that is not a fetch.
	OnCommand func(Command)
	// OnChange, if set, receives a copy of the state after every event.
	OnChange func(State)

	loader *loader.Loader
	events chan Event
	done   chan struct{}

	mu    sync.RWMutex
	state State
}

// NewSession returns a session that fetches notes through f.
func NewSession(f loader.Fetcher) *Session {
	return &Session{
		loader: loader.New(f),
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		state:  NewState(),
	}
}

// Run processes events until ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	defer s.loader.Cancel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			s.apply(ctx, ev)
		}
	}
}

// Dispatch queues ev. It reports false once the session has stopped.
func (s *Session) Dispatch(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// LoadCatalog fetches the catalog in the background and reports the
// outcome as CatalogLoaded or CatalogFailed.
func (s *Session) LoadCatalog(ctx context.Context, fetch func(context.Context) (catalog.Catalog, error)) {
	go func() {
		c, err := fetch(ctx)
		if err != nil {
			log.Printf("reader: catalog load failed: %v", err)
			s.Dispatch(CatalogFailed{Err: err})
			return
		}
		s.Dispatch(CatalogLoaded{Catalog: c})
	}()
}

func (s *Session) apply(ctx context.Context, ev Event) {
	s.mu.Lock()
	next, cmds := Reduce(s.state, ev)
	s.state = next
	s.mu.Unlock()

	if s.OnChange != nil {
		s.OnChange(next.Clone())
	}

	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case FetchDocument:
			s.fetch(ctx, cmd)
		case CancelFetch:
			s.loader.Cancel()
		default:
			if s.OnCommand != nil {
				s.OnCommand(cmd)
			}
		}
	}
}

func (s *Session) fetch(ctx context.Context, cmd FetchDocument) {
	seq, fctx := s.loader.Begin(ctx)
	go func() {
		res, err := s.loader.Fetch(fctx, seq, cmd.Entry)
		if errors.Is(err, loader.ErrSuperseded) {
			return
		}
		if err != nil {
			s.Dispatch(DocumentFailed{ID: cmd.Entry.ID, Seq: cmd.Seq, Err: err})
			return
		}
		s.Dispatch(DocumentLoaded{ID: cmd.Entry.ID, Seq: cmd.Seq, Text: res.Text})
	}()
}
