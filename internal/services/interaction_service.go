package services

import (
	"context"
	"math"

	"github.com/dhruvbhalode/capstone/internal/errors"
	"github.com/dhruvbhalode/capstone/internal/jobs"
	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
	"github.com/dhruvbhalode/capstone/internal/session"
)

// RecordInteractionInput is the payload the session UI sends at each phase
// transition. Correct is a pointer so an omitted value is distinguishable
// from an explicit false.
type RecordInteractionInput struct {
	UserID        int64    `json:"user_id"`
	ProblemID     int64    `json:"problem_id"`
	Correct       *bool    `json:"correct"`
	Phase         string   `json:"phase"`
	Skills        []string `json:"skills,omitempty"`
	TimeSpent     int      `json:"time_spent,omitempty"`
	HintsUsed     int      `json:"hints_used,omitempty"`
	Attempts      int      `json:"attempts,omitempty"`
	MCQScore      *int     `json:"mcq_score,omitempty"`
	CodeSubmitted string   `json:"code_submitted,omitempty"`
}

// InteractionService records learning events and keeps the user's aggregate
// progress in sync with the log.
type InteractionService interface {
	RecordInteraction(ctx context.Context, input RecordInteractionInput) (*models.Interaction, error)
}

type interactionService struct {
	interactionRepo repository.InteractionRepository
	userRepo        repository.UserRepository
	problemRepo     repository.ProblemRepository
	queue           jobs.JobQueue
	policy          session.Machine
}

// NewInteractionService creates a new InteractionService. passPercent is the
// MCQ score at or above which an mcq-phase interaction counts as correct.
func NewInteractionService(
	interactionRepo repository.InteractionRepository,
	userRepo repository.UserRepository,
	problemRepo repository.ProblemRepository,
	queue jobs.JobQueue,
	passPercent int,
) InteractionService {
	return &interactionService{
		interactionRepo: interactionRepo,
		userRepo:        userRepo,
		problemRepo:     problemRepo,
		queue:           queue,
		policy:          session.New(0, passPercent),
	}
}

func (s *interactionService) RecordInteraction(ctx context.Context, input RecordInteractionInput) (*models.Interaction, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording interaction: user_id=%d, problem_id=%d, phase=%s", input.UserID, input.ProblemID, input.Phase)

	// Reject before anything is persisted.
	if input.UserID == 0 {
		return nil, errors.NewValidationError("user_id", "is required")
	}
	if input.ProblemID == 0 {
		return nil, errors.NewValidationError("problem_id", "is required")
	}
	if input.Correct == nil {
		return nil, errors.NewValidationError("correct", "is required")
	}
	if input.Phase == "" {
		return nil, errors.NewValidationError("phase", "is required")
	}
	if !models.ValidPhase(input.Phase) {
		return nil, errors.NewValidationError("phase", "must be one of reading, mcq, coding, completed")
	}
	if input.MCQScore != nil && (*input.MCQScore < 0 || *input.MCQScore > 100) {
		return nil, errors.NewValidationError("mcq_score", "must be between 0 and 100")
	}

	user, err := s.userRepo.Get(ctx, input.UserID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", input.UserID)
	}

	problem, err := s.problemRepo.Get(ctx, input.ProblemID)
	if err != nil {
		log.Error("failed to load problem: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if problem == nil {
		return nil, errors.NewNotFoundError("problem", input.ProblemID)
	}

	// Snapshot the problem's tags when the payload doesn't carry them, so
	// the mastery history survives later tag edits.
	skills := input.Skills
	if len(skills) == 0 {
		skills = problem.Skills
	}

	// The server is authoritative for MCQ checkpoints: when a score is
	// present the threshold decides correctness, not the client.
	correct := *input.Correct
	if input.Phase == models.PhaseMCQ && input.MCQScore != nil {
		correct = s.policy.Passed(*input.MCQScore)
	}

	interaction, err := s.interactionRepo.Insert(ctx, models.Interaction{
		UserID:        input.UserID,
		ProblemID:     input.ProblemID,
		Skills:        skills,
		Correct:       correct,
		Phase:         input.Phase,
		TimeSpent:     input.TimeSpent,
		HintsUsed:     input.HintsUsed,
		Attempts:      input.Attempts,
		MCQScore:      input.MCQScore,
		CodeSubmitted: input.CodeSubmitted,
	})
	if err != nil {
		log.Error("failed to persist interaction: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// The log write above is the durable outcome. Everything below is
	// best effort and never fails the recording.
	if err := s.queue.EnqueueForward(*interaction); err != nil {
		log.Warn("failed to enqueue forward for interaction %d: %v", interaction.ID, err)
	}

	if err := s.refreshProgress(ctx, input.UserID); err != nil {
		log.Error("failed to update progress for user %d: %v", input.UserID, err)
	}

	log.Info("interaction recorded: id=%d, user_id=%d, problem_id=%d, phase=%s, correct=%t",
		interaction.ID, interaction.UserID, interaction.ProblemID, interaction.Phase, interaction.Correct)
	return interaction, nil
}

// refreshProgress recomputes the user's aggregate stats from the full log.
// Recomputation is idempotent and order independent, so a failed update here
// is recovered by the next recorded interaction.
func (s *interactionService) refreshProgress(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	total, err := s.interactionRepo.Count(ctx, models.InteractionFilter{UserID: userID})
	if err != nil {
		return err
	}

	correct := true
	correctCount, err := s.interactionRepo.Count(ctx, models.InteractionFilter{UserID: userID, Correct: &correct})
	if err != nil {
		return err
	}

	accuracy := 0
	if total > 0 {
		accuracy = int(math.Round(100 * float64(correctCount) / float64(total)))
	}

	// A problem counts as solved on its first correct completion and never
	// again: distinct problem ids make retries idempotent.
	solvedIDs, err := s.interactionRepo.DistinctProblemIDs(ctx, models.InteractionFilter{
		UserID:  userID,
		Correct: &correct,
		Phase:   models.PhaseCompleted,
	})
	if err != nil {
		return err
	}

	log.Debug("refreshing progress: user_id=%d, total=%d, correct=%d, accuracy=%d, solved=%d",
		userID, total, correctCount, accuracy, len(solvedIDs))
	return s.userRepo.UpdateProgress(ctx, userID, len(solvedIDs), accuracy)
}
