package api

import (
	"net/http"

	"github.com/dhruvbhalode/capstone/internal/services"
)

// handleRecordInteraction is called by the session UI at each phase
// transition. The authenticated user is the subject when the payload does not
// name one.
func (s *Server) handleRecordInteraction(w http.ResponseWriter, r *http.Request) {
	var input services.RecordInteractionInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	if input.UserID == 0 {
		input.UserID = userFromContext(r.Context())
	}

	interaction, err := s.InteractionService.RecordInteraction(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, interaction)
}
