package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhruvbhalode/capstone/internal/oracle"
)

// MockOracleClient is a mock implementation of oracle.ClientInterface
type MockOracleClient struct {
	mock.Mock
}

func (m *MockOracleClient) Status(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOracleClient) PushInteraction(ctx context.Context, ev oracle.InteractionEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockOracleClient) RequestRecommendations(ctx context.Context, userID string, candidates []oracle.Candidate, targetDifficulty float64) ([]oracle.Candidate, error) {
	args := m.Called(ctx, userID, candidates, targetDifficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]oracle.Candidate), args.Error(1)
}

func (m *MockOracleClient) RequestMastery(ctx context.Context, userID string) (map[string]float64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}
