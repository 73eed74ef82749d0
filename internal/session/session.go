package session

import (
	"fmt"

	"github.com/dhruvbhalode/capstone/internal/models"
)

// DefaultPassPercent is the MCQ score at or above which the MCQ checkpoint is
// recorded as correct. It gates correctness logging, not progression: a failing
// score still moves the session to coding.
const DefaultPassPercent = 80

// EventType enumerates the user actions that drive a session.
type EventType int

const (
	// EventBeginQuestions leaves the reading phase. Lands on mcq when the
	// problem has questions, directly on coding otherwise.
	EventBeginQuestions EventType = iota
	// EventFinishMCQ fires after the last MCQ is answered; carries the score.
	EventFinishMCQ
	// EventSubmit is the user submitting code. Outcome may already be known.
	EventSubmit
	// EventReportOutcome is the final self-reported pass/fail.
	EventReportOutcome
	// EventTryAgain re-enters coding from completed.
	EventTryAgain
)

func (t EventType) String() string {
	switch t {
	case EventBeginQuestions:
		return "begin_questions"
	case EventFinishMCQ:
		return "finish_mcq"
	case EventSubmit:
		return "submit"
	case EventReportOutcome:
		return "report_outcome"
	case EventTryAgain:
		return "try_again"
	default:
		return "unknown"
	}
}

// Event is one user action. MCQScore is read for EventFinishMCQ; Worked is
// read for EventReportOutcome and, when Outcome is non-nil, for EventSubmit.
type Event struct {
	Type     EventType
	MCQScore int
	Outcome  *bool
}

// EffectKind enumerates the side effects a transition asks its caller to run.
type EffectKind int

const (
	// EffectRecord emits an interaction through the recording interface.
	EffectRecord EffectKind = iota
	// EffectResetTimer zeroes the coding timer. The timer only runs in coding.
	EffectResetTimer
)

// Checkpoint describes the interaction an EffectRecord asks the caller to emit.
type Checkpoint struct {
	Phase    string
	Correct  bool
	MCQScore *int
}

type Effect struct {
	Kind       EffectKind
	Checkpoint *Checkpoint
}

// Machine holds the per-problem policy a session runs under. The zero value is
// not usable; construct with New.
type Machine struct {
	MCQCount    int
	PassPercent int
}

func New(mcqCount, passPercent int) Machine {
	if passPercent <= 0 {
		passPercent = DefaultPassPercent
	}
	return Machine{MCQCount: mcqCount, PassPercent: passPercent}
}

// Passed reports whether an MCQ score counts as a correct checkpoint.
func (m Machine) Passed(score int) bool {
	return score >= m.PassPercent
}

// Transition is the pure step function: given the current phase and an event,
// it returns the next phase and the effects the caller must run. It never
// mutates anything and returns an error for transitions the session graph
// does not allow.
func (m Machine) Transition(state string, ev Event) (string, []Effect, error) {
	switch state {
	case models.PhaseReading:
		if ev.Type != EventBeginQuestions {
			return state, nil, invalid(state, ev)
		}
		if m.MCQCount > 0 {
			return models.PhaseMCQ, nil, nil
		}
		// No questions authored for this problem: straight to the editor.
		return models.PhaseCoding, []Effect{{Kind: EffectResetTimer}}, nil

	case models.PhaseMCQ:
		if ev.Type != EventFinishMCQ {
			return state, nil, invalid(state, ev)
		}
		score := ev.MCQScore
		return models.PhaseCoding, []Effect{
			{Kind: EffectRecord, Checkpoint: &Checkpoint{
				Phase:    models.PhaseMCQ,
				Correct:  m.Passed(score),
				MCQScore: &score,
			}},
			{Kind: EffectResetTimer},
		}, nil

	case models.PhaseCoding:
		if ev.Type != EventSubmit {
			return state, nil, invalid(state, ev)
		}
		if ev.Outcome != nil {
			return models.PhaseCompleted, []Effect{
				{Kind: EffectRecord, Checkpoint: &Checkpoint{
					Phase:   models.PhaseCompleted,
					Correct: *ev.Outcome,
				}},
			}, nil
		}
		// Outcome not yet self-graded: checkpoint the submission, wait for
		// the pass/fail report.
		return models.PhaseCompleted, []Effect{
			{Kind: EffectRecord, Checkpoint: &Checkpoint{
				Phase:   models.PhaseCoding,
				Correct: false,
			}},
		}, nil

	case models.PhaseCompleted:
		switch ev.Type {
		case EventReportOutcome:
			worked := ev.Outcome != nil && *ev.Outcome
			return models.PhaseCompleted, []Effect{
				{Kind: EffectRecord, Checkpoint: &Checkpoint{
					Phase:   models.PhaseCompleted,
					Correct: worked,
				}},
			}, nil
		case EventTryAgain:
			return models.PhaseCoding, []Effect{{Kind: EffectResetTimer}}, nil
		default:
			return state, nil, invalid(state, ev)
		}
	}
	return state, nil, fmt.Errorf("unknown session phase %q", state)
}

func invalid(state string, ev Event) error {
	return fmt.Errorf("event %s not allowed in phase %s", ev.Type, state)
}
