package api

import (
	"net/http"

	"github.com/dhruvbhalode/capstone/internal/models"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	problems, err := s.RecommendationService.GetRecommendations(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if problems == nil {
		problems = []models.Problem{}
	}

	respondJSON(w, http.StatusOK, problems)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	analytics, err := s.AnalyticsService.GetAnalytics(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}

func (s *Server) handleSolvedProblems(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt64(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	problems, err := s.RecommendationService.GetSolvedProblems(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if problems == nil {
		problems = []models.Problem{}
	}

	respondJSON(w, http.StatusOK, problems)
}
