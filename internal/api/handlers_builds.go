package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleRebuild runs a build synchronously. A failed build answers 422
// with the recorded errors; the previous snapshot keeps being served.
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	build, err := s.orchestrator.Rebuild(r.Context(), "api")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, build)
		return
	}
	writeJSON(w, http.StatusOK, build)
}

func (s *Server) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"builds": s.orchestrator.Builds()})
}

func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	buildID := chi.URLParam(r, "buildID")
	b := s.orchestrator.GetBuild(buildID)
	if b == nil {
		jsonError(w, "build not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b.Snapshot())
}

func (s *Server) handleBuildStats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"stats": s.orchestrator.Stats()}
	if snap := s.orchestrator.Current(); snap != nil {
		resp["current_build_id"] = snap.BuildID
	}
	writeJSON(w, http.StatusOK, resp)
}
