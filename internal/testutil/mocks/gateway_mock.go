package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhruvbhalode/capstone/internal/models"
)

// MockGateway is a mock implementation of oracle.GatewayInterface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockGateway) Forward(ctx context.Context, in models.Interaction) {
	m.Called(ctx, in)
}

func (m *MockGateway) Recommend(ctx context.Context, userID int64, pool []models.Problem, targetDifficulty float64) []models.Problem {
	args := m.Called(ctx, userID, pool, targetDifficulty)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Problem)
}

func (m *MockGateway) Mastery(ctx context.Context, userID int64) map[string]float64 {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]float64)
}
