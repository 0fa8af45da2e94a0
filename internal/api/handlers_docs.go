package api

import (
	"net/http"

	"github.com/dgallion1/docnav/internal/content"
	"github.com/dgallion1/docnav/internal/nav"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Site)
}

// handleListDocs lists indexed documents, optionally filtered by tag.
func (s *Server) handleListDocs(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	tag := r.URL.Query().Get("tag")
	docs := make([]content.Doc, 0, snap.Content.Len())
	for _, d := range snap.Content.Docs() {
		if tag == "" || hasTag(d, tag) {
			docs = append(docs, d)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"build_id": snap.BuildID, "documents": docs})
}

type docResponse struct {
	content.Doc
	Breadcrumb *nav.Breadcrumb `json:"breadcrumb"`
	Pager      *nav.Pager      `json:"pager"`
}

// handleGetDoc returns one document with its place in the navigation.
// Documents not referenced by any sidebar have a null breadcrumb.
func (s *Server) handleGetDoc(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "*")
	doc, ok := snap.Content.Get(id)
	if !ok {
		jsonError(w, "unknown document: "+id, http.StatusNotFound)
		return
	}
	resp := docResponse{Doc: doc}
	if crumb, ok := snap.Nav.Lookup(id); ok {
		resp.Breadcrumb = &crumb
	}
	if pager, ok := snap.Nav.Pager(id); ok {
		resp.Pager = &pager
	}
	writeJSON(w, http.StatusOK, resp)
}

func hasTag(d content.Doc, tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
