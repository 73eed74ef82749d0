package models

import "time"

// Session phases, in the order a problem-solving session goes through them.
const (
	PhaseReading   = "reading"
	PhaseMCQ       = "mcq"
	PhaseCoding    = "coding"
	PhaseCompleted = "completed"
)

// ValidPhase reports whether s names a known session phase.
func ValidPhase(s string) bool {
	switch s {
	case PhaseReading, PhaseMCQ, PhaseCoding, PhaseCompleted:
		return true
	}
	return false
}

// Interaction is one learning event in the append-only log. Skills is a
// denormalized copy of the problem's tags at record time, so mastery history
// survives later tag edits.
type Interaction struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ProblemID     int64     `json:"problem_id"`
	Skills        []string  `json:"skills"`
	Correct       bool      `json:"correct"`
	Phase         string    `json:"phase"`
	TimeSpent     int       `json:"time_spent,omitempty"` // seconds
	HintsUsed     int       `json:"hints_used"`
	Attempts      int       `json:"attempts"`
	MCQScore      *int      `json:"mcq_score,omitempty"` // 0-100
	CodeSubmitted string    `json:"code_submitted,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type InteractionFilter struct {
	UserID    int64
	ProblemID int64
	Correct   *bool
	Phase     string
	Limit     int
	Offset    int
}
