package services

import (
	"context"
	"math"

	"github.com/dhruvbhalode/capstone/internal/errors"
	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/oracle"
	"github.com/dhruvbhalode/capstone/internal/repository"
)

const recentActivityLimit = 10

// AnalyticsService serves the read-only aggregate view of a user's learning.
type AnalyticsService interface {
	GetAnalytics(ctx context.Context, userID int64) (*models.Analytics, error)
}

type analyticsService struct {
	interactionRepo repository.InteractionRepository
	userRepo        repository.UserRepository
	gateway         oracle.GatewayInterface
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	interactionRepo repository.InteractionRepository,
	userRepo repository.UserRepository,
	gateway oracle.GatewayInterface,
) AnalyticsService {
	return &analyticsService{
		interactionRepo: interactionRepo,
		userRepo:        userRepo,
		gateway:         gateway,
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, userID int64) (*models.Analytics, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting analytics: user_id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	total, err := s.interactionRepo.Count(ctx, models.InteractionFilter{UserID: userID})
	if err != nil {
		log.Error("failed to count interactions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	correct := true
	correctCount, err := s.interactionRepo.Count(ctx, models.InteractionFilter{UserID: userID, Correct: &correct})
	if err != nil {
		log.Error("failed to count correct interactions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	accuracy := 0
	if total > 0 {
		accuracy = int(math.Round(100 * float64(correctCount) / float64(total)))
	}

	recent, err := s.interactionRepo.List(ctx, models.InteractionFilter{UserID: userID, Limit: recentActivityLimit})
	if err != nil {
		log.Error("failed to load recent activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if recent == nil {
		recent = []models.Interaction{}
	}

	// Degrades to an empty map when the scoring service is down; the
	// dashboard treats absence as unknown.
	mastery := s.gateway.Mastery(ctx, userID)

	return &models.Analytics{
		TotalProblems:   total,
		CorrectProblems: correctCount,
		Accuracy:        accuracy,
		SkillMastery:    mastery,
		RecentActivity:  recent,
	}, nil
}
