package api

import (
	"net/http"

	"github.com/dhruvbhalode/capstone/internal/logger"
)

// handleHealth is the liveness probe: the process is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady reports readiness. The database is required; the scoring
// service is reported but not required, since every path degrades without it.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if err := s.DB.PingContext(ctx); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":   "unavailable",
			"database": "down",
		})
		return
	}

	oracleState := "unavailable"
	if s.Gateway.Available() {
		oracleState = "available"
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ready",
		"database": "up",
		"oracle":   oracleState,
	})
}
