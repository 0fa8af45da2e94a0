package api

import (
	"bytes"
	"net/http"

	"github.com/dgallion1/docnav/internal/nav"
	"github.com/dgallion1/docnav/internal/render"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListSidebars(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"build_id": snap.BuildID, "sidebars": snap.Nav})
}

func (s *Server) handleGetSidebar(w http.ResponseWriter, r *http.Request) {
	tree, ok := s.tree(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// handleSidebarHTML renders a sidebar menu. The optional active query
// parameter marks the current document and expands its categories.
func (s *Server) handleSidebarHTML(w http.ResponseWriter, r *http.Request) {
	tree, ok := s.tree(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.Sidebar(&buf, tree, r.URL.Query().Get("active")); err != nil {
		jsonError(w, "failed to render sidebar: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) tree(w http.ResponseWriter, r *http.Request) (*nav.Tree, bool) {
	snap, ok := s.snapshot(w)
	if !ok {
		return nil, false
	}
	name := chi.URLParam(r, "sidebar")
	tree, ok := snap.Nav.Tree(name)
	if !ok {
		jsonError(w, "unknown sidebar: "+name, http.StatusNotFound)
		return nil, false
	}
	return tree, true
}

func (s *Server) handleBreadcrumb(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	id, ok := docParam(w, r)
	if !ok {
		return
	}
	crumb, ok := snap.Nav.Lookup(id)
	if !ok {
		jsonError(w, "document is not in any sidebar: "+id, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":  id,
		"sidebar": crumb.Sidebar,
		"path":    crumb.Path,
	})
}

func (s *Server) handlePager(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	id, ok := docParam(w, r)
	if !ok {
		return
	}
	pager, ok := snap.Nav.Pager(id)
	if !ok {
		jsonError(w, "document is not in any sidebar: "+id, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, pager)
}

// handleGeneratedIndex serves a synthesized category page as JSON, or as
// an HTML fragment with format=html.
func (s *Server) handleGeneratedIndex(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "*")
	gi, tree, ok := snap.Nav.GeneratedIndex(slug)
	if !ok {
		jsonError(w, "unknown generated index: "+slug, http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		var buf bytes.Buffer
		if err := render.GeneratedIndex(&buf, gi); err != nil {
			jsonError(w, "failed to render index: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
		return
	}

	pager, _ := tree.IndexPager(slug)
	writeJSON(w, http.StatusOK, map[string]any{
		"sidebar": tree.Name(),
		"index":   gi,
		"pager":   pager,
	})
}

func docParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("doc")
	if id == "" {
		jsonError(w, "doc query parameter is required", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
