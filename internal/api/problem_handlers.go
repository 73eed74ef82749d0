package api

import (
	"net/http"
	"strconv"

	"github.com/dhruvbhalode/capstone/internal/models"
)

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.ProblemFilter{
		Difficulty: q.Get("difficulty"),
		Skill:      q.Get("skill"),
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	problems, total, err := s.ProblemService.ListProblems(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if problems == nil {
		problems = []models.Problem{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"problems": problems,
		"total":    total,
	})
}

func (s *Server) handleGetProblem(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	problem, err := s.ProblemService.GetProblem(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, problem)
}
