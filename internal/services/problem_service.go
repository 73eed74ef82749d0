package services

import (
	"context"

	"github.com/dhruvbhalode/capstone/internal/errors"
	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
)

// ProblemService serves the read-mostly problem catalogue
type ProblemService interface {
	GetProblem(ctx context.Context, id int64) (*models.Problem, error)
	ListProblems(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, int, error)
}

type problemService struct {
	problemRepo repository.ProblemRepository
}

// NewProblemService creates a new ProblemService
func NewProblemService(problemRepo repository.ProblemRepository) ProblemService {
	return &problemService{problemRepo: problemRepo}
}

func (s *problemService) GetProblem(ctx context.Context, id int64) (*models.Problem, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting problem: id=%d", id)

	problem, err := s.problemRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get problem: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if problem == nil {
		return nil, errors.NewNotFoundError("problem", id)
	}
	return problem, nil
}

func (s *problemService) ListProblems(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing problems: difficulty=%s, skill=%s", filter.Difficulty, filter.Skill)

	problems, err := s.problemRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list problems: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.problemRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count problems: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return problems, totalCount, nil
}
