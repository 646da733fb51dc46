package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/notebook/internal/catalog"
	"github.com/ziadkadry99/notebook/internal/reader"
	"github.com/ziadkadry99/notebook/internal/render"
	"github.com/ziadkadry99/notebook/internal/site"
	"github.com/ziadkadry99/notebook/internal/toc"
	"github.com/ziadkadry99/notebook/internal/walker"
)

// noteResponse is the body of GET /api/notes/{id}.
type noteResponse struct {
	Entry catalog.Entry  `json:"entry"`
	TOC   toc.TOC        `json:"toc"`
	Prev  *catalog.Entry `json:"prev"`
	Next  *catalog.Entry `json:"next"`
}

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/", s.handleRoot)
	r.Get("/style.css", handleAsset("style.css", "text/css; charset=utf-8"))
	r.Get("/script.js", handleAsset("script.js", "text/javascript; charset=utf-8"))
	r.Get("/"+catalog.DefaultFileName, s.handleCatalogFile)
	r.Get("/notes/{file}", s.handleRawNote)
	r.Get("/read/{id}", s.handleRead)

	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleNote)
		r.Get("/{id}/toc", s.handleTOC)
		r.Get("/{id}/anchor", s.handleAnchor)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	first, ok := s.Catalog().Resolve("")
	if !ok {
		http.Error(w, "No notes found.", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/read/"+first.ID, http.StatusFound)
}

func handleAsset(name, contentType string) http.HandlerFunc {
	data, _ := site.Asset(name)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

func (s *Server) handleCatalogFile(w http.ResponseWriter, r *http.Request) {
	data, err := catalog.Marshal(s.Catalog())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleRawNote(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	entry, ok := s.entryByFile(file)
	if !ok {
		http.NotFound(w, r)
		return
	}
	content, err := s.src.Read(r.Context(), entry.FileName)
	if err != nil {
		s.readFailed(w, r, entry, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(content)
}

// handleRead renders a note page. Unknown ids get the not-found page with
// status 404.
func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cat := s.Catalog()

	entry, ok := cat.Lookup(id)
	if !ok {
		html, _, err := s.pages.Render(cat, catalog.Entry{ID: id, Title: "404"}, []byte(reader.NotFoundBody))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write(html)
		return
	}

	content, err := s.src.Read(r.Context(), entry.FileName)
	if err != nil {
		s.readFailed(w, r, entry, err)
		return
	}

	key := entry.ID + ":" + walker.HashBytes(content)
	html, ok := s.cache.Get(key)
	if !ok {
		var page render.Page
		html, page, err = s.pages.Render(cat, entry, content)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(page.Missing) > 0 {
			log.Printf("server: %s: headings without anchors: %v", entry.ID, page.Missing)
		}
		s.cache.Add(key, html)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Catalog())
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	entry, contents, ok := s.loadTOC(w, r)
	if !ok {
		return
	}
	prev, next := catalog.Neighbors(s.Catalog(), entry.ID)
	writeJSON(w, http.StatusOK, noteResponse{Entry: entry, TOC: contents, Prev: prev, Next: next})
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	_, contents, ok := s.loadTOC(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// handleAnchor resolves a deep-link fragment to a heading of the note.
func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	_, contents, ok := s.loadTOC(w, r)
	if !ok {
		return
	}
	fragment := r.URL.Query().Get("fragment")
	h, found := toc.NewIndex(contents).Resolve(fragment)
	if !found {
		writeError(w, http.StatusNotFound, "no heading matches fragment "+fragment)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// loadTOC reads the note named by the id URL parameter and extracts its
// TOC. On failure it writes the response and reports false.
func (s *Server) loadTOC(w http.ResponseWriter, r *http.Request) (catalog.Entry, toc.TOC, bool) {
	id := chi.URLParam(r, "id")
	entry, ok := s.Catalog().Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "note not found: "+id)
		return catalog.Entry{}, nil, false
	}
	content, err := s.src.Read(r.Context(), entry.FileName)
	if err != nil {
		s.readFailed(w, r, entry, err)
		return catalog.Entry{}, nil, false
	}
	contents := toc.Extract(string(catalog.StripFrontMatter(content)))
	if contents == nil {
		contents = toc.TOC{}
	}
	return entry, contents, true
}

func (s *Server) entryByFile(file string) (catalog.Entry, bool) {
	for _, e := range s.Catalog() {
		if e.FileName == file {
			return e, true
		}
	}
	return catalog.Entry{}, false
}

// readFailed reports a note that is in the catalog but could not be read,
// typically because it was removed before the watcher caught up.
func (s *Server) readFailed(w http.ResponseWriter, r *http.Request, entry catalog.Entry, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		writeError(w, http.StatusNotFound, "note file missing: "+entry.FileName)
		return
	}
	log.Printf("server: reading %s: %v", entry.FileName, err)
	writeError(w, http.StatusBadGateway, "reading note failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
