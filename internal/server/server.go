package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/render"
	"github.com/ziadkadry99/notebook/internal/site"
	"github.com/ziadkadry99/notebook/internal/spy"
)

// DefaultCacheSize is the number of rendered pages kept in memory.
const DefaultCacheSize = 128

// Config holds server configuration.
type Config struct {
	Port        int
	NotesDir    string
	Include     []string
	Exclude     []string
	PathPrefix  string
	Concurrency int
	SiteTitle   string
	Band        spy.Band
	Breakpoint  int
	CacheSize   int
	Watch       bool // rebuild the catalog when notes change
	AllowAll    bool // allow all CORS origins (dev mode)
}

// Server serves the catalog, raw notes and rendered reading pages of one
// notes directory.
type Server struct {
	cfg        Config
	src        catalog.DirSource
	pages      *site.PageRenderer
	cache      *lru.Cache[string, []byte]
	hub        *Hub
	router     chi.Router
	httpServer *http.Server

	mu  sync.RWMutex
	cat catalog.Catalog
}

// New creates a server with an empty catalog. Call Reload to populate it.
func New(cfg Config) (*Server, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("creating page cache: %w", err)
	}
	pages, err := site.NewPageRenderer(site.PageOptions{
		SiteTitle:  cfg.SiteTitle,
		Band:       cfg.Band,
		Breakpoint: cfg.Breakpoint,
		BasePath:   "/",
		Href:       func(id string) string { return "/read/" + id },
		Reload:     cfg.Watch,
		Renderer:   render.New(render.WithLinkBase("/read")),
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:   cfg,
		src:   catalog.DirSource{Dir: cfg.NotesDir, Include: cfg.Include, Exclude: cfg.Exclude},
		pages: pages,
		cache: cache,
		hub:   NewHub(),
		cat:   catalog.Catalog{},
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Websocket connections are long-lived and stay out of the timeout group.
	r.Get("/ws/reload", s.hub.ServeWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		s.registerRoutes(r)
	})
	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Catalog returns the current catalog.
func (s *Server) Catalog() catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// SetCatalog swaps in a new catalog, drops cached pages and tells connected
// readers to reload.
func (s *Server) SetCatalog(c catalog.Catalog) {
	if c == nil {
		c = catalog.Catalog{}
	}
	s.mu.Lock()
	s.cat = c
	s.mu.Unlock()
	s.cache.Purge()
	s.hub.Broadcast(reloadMessage{Type: "catalog", Count: len(c)})
}

func (s *Server) buildOptions() catalog.Options {
	return catalog.Options{PathPrefix: s.cfg.PathPrefix, Concurrency: s.cfg.Concurrency}
}

// Reload rebuilds the catalog from the notes directory.
func (s *Server) Reload(ctx context.Context) error {
	c, err := catalog.Build(ctx, s.src, s.buildOptions())
	if err != nil {
		return err
	}
	s.SetCatalog(c)
	log.Printf("server: catalog loaded with %d notes", len(c))
	return nil
}

// Run builds the catalog, starts the watcher if configured and serves until
// ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Reload(ctx); err != nil {
		return err
	}

	if s.cfg.Watch {
		w := &catalog.Watcher{
			Source:  s.src,
			Options: s.buildOptions(),
			OnBuild: func(c catalog.Catalog, err error) {
				if err != nil {
					log.Printf("server: rebuild failed: %v", err)
					return
				}
				s.SetCatalog(c)
				log.Printf("server: catalog rebuilt with %d notes", len(c))
			},
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Printf("server: watcher stopped: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.Close()
		return s.Shutdown(shutdownCtx)
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	log.Printf("notebook server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
