package services

import (
	"context"

	"github.com/dhruvbhalode/capstone/internal/errors"
	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/oracle"
	"github.com/dhruvbhalode/capstone/internal/repository"
)

// RecommendationService picks the next problems to serve a user.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int64) ([]models.Problem, error)
	GetSolvedProblems(ctx context.Context, userID int64) ([]models.Problem, error)
}

// RecommendationPolicy carries the tunables of the selection pipeline.
type RecommendationPolicy struct {
	CandidatePoolSize int
	ShortlistSize     int
	TargetDifficulty  float64
}

type recommendationService struct {
	interactionRepo repository.InteractionRepository
	problemRepo     repository.ProblemRepository
	userRepo        repository.UserRepository
	gateway         oracle.GatewayInterface
	policy          RecommendationPolicy
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	interactionRepo repository.InteractionRepository,
	problemRepo repository.ProblemRepository,
	userRepo repository.UserRepository,
	gateway oracle.GatewayInterface,
	policy RecommendationPolicy,
) RecommendationService {
	return &recommendationService{
		interactionRepo: interactionRepo,
		problemRepo:     problemRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		policy:          policy,
	}
}

func (s *recommendationService) GetRecommendations(ctx context.Context, userID int64) ([]models.Problem, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting recommendations: user_id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	correct := true
	solvedIDs, err := s.interactionRepo.DistinctProblemIDs(ctx, models.InteractionFilter{UserID: userID, Correct: &correct})
	if err != nil {
		log.Error("failed to load solved problem ids: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// Cap the pool to bound the payload sent for ranking.
	pool, err := s.problemRepo.List(ctx, models.ProblemFilter{
		ExcludeIDs: solvedIDs,
		Limit:      s.policy.CandidatePoolSize,
	})
	if err != nil {
		log.Error("failed to build candidate pool: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// All available problems solved: an empty list, not an error.
	if len(pool) == 0 {
		log.Debug("candidate pool empty: user_id=%d", userID)
		return []models.Problem{}, nil
	}

	ranked := s.gateway.Recommend(ctx, userID, pool, s.policy.TargetDifficulty)
	if len(ranked) > s.policy.ShortlistSize {
		ranked = ranked[:s.policy.ShortlistSize]
	}

	log.Debug("recommendations ready: user_id=%d, count=%d", userID, len(ranked))
	return ranked, nil
}

func (s *recommendationService) GetSolvedProblems(ctx context.Context, userID int64) ([]models.Problem, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting solved problems: user_id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	correct := true
	solvedIDs, err := s.interactionRepo.DistinctProblemIDs(ctx, models.InteractionFilter{UserID: userID, Correct: &correct})
	if err != nil {
		log.Error("failed to load solved problem ids: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(solvedIDs) == 0 {
		return []models.Problem{}, nil
	}

	problems, err := s.problemRepo.List(ctx, models.ProblemFilter{IDs: solvedIDs, Limit: len(solvedIDs)})
	if err != nil {
		log.Error("failed to load solved problems: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return problems, nil
}
