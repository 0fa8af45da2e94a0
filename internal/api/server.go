package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docnav.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public, read-only endpoints.
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/site", s.handleSite)
		r.Get("/docs", s.handleListDocs)
		r.Get("/docs/*", s.handleGetDoc)

		r.Get("/sidebars", s.handleListSidebars)
		r.Get("/sidebars/{sidebar}", s.handleGetSidebar)
		r.Get("/sidebars/{sidebar}/html", s.handleSidebarHTML)
		r.Get("/breadcrumb", s.handleBreadcrumb)
		r.Get("/pager", s.handlePager)
		r.Get("/indexes/*", s.handleGeneratedIndex)

		r.Get("/builds", s.handleListBuilds)
		r.Get("/builds/{buildID}", s.handleGetBuild)
		r.Get("/stats/builds", s.handleBuildStats)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.cfg.DocnavAPIKey, s.log))
			r.Post("/rebuild", s.handleRebuild)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	if snap := s.orchestrator.Current(); snap != nil {
		status["build_id"] = snap.BuildID
		status["built_at"] = snap.BuiltAt
	} else {
		status["status"] = "starting"
	}
	writeJSON(w, http.StatusOK, status)
}

// snapshot returns the published snapshot, answering 503 when the site has
// not been built yet.
func (s *Server) snapshot(w http.ResponseWriter) (*pipeline.Snapshot, bool) {
	snap := s.orchestrator.Current()
	if snap == nil {
		jsonError(w, "site has not been built yet", http.StatusServiceUnavailable)
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
