package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dhruvbhalode/capstone/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueForward(interaction models.Interaction) error {
	args := m.Called(interaction)
	return args.Error(0)
}
