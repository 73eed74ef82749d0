package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Post("/api/signup", s.handleSignup)
	r.Post("/api/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/api/problems", s.handleListProblems)
		r.Get("/api/problems/{id}", s.handleGetProblem)
		r.Post("/api/interactions", s.handleRecordInteraction)
		r.Get("/api/recommendations/{userID}", s.handleRecommendations)
		r.Get("/api/analytics/{userID}", s.handleAnalytics)
		r.Get("/api/users/{userID}/solved-problems", s.handleSolvedProblems)
	})

	return r
}
