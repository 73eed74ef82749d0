package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhruvbhalode/capstone/internal/models"
)

// MockInteractionRepository is a mock implementation of repository.InteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Insert(ctx context.Context, interaction models.Interaction) (*models.Interaction, error) {
	args := m.Called(ctx, interaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) List(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) Count(ctx context.Context, filter models.InteractionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockInteractionRepository) DistinctProblemIDs(ctx context.Context, filter models.InteractionFilter) ([]int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
