package oracle

import (
	"context"

	"github.com/dhruvbhalode/capstone/internal/models"
)

// ClientInterface defines the operations the gateway needs from the
// knowledge-tracing service. It enables testability by allowing mock
// implementations.
type ClientInterface interface {
	Status(ctx context.Context) error
	PushInteraction(ctx context.Context, ev InteractionEvent) error
	RequestRecommendations(ctx context.Context, userID string, candidates []Candidate, targetDifficulty float64) ([]Candidate, error)
	RequestMastery(ctx context.Context, userID string) (map[string]float64, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// GatewayInterface is what the service layer sees of the gateway: an answer
// for every call, degraded but well-defined when the service is down.
type GatewayInterface interface {
	Available() bool
	Forward(ctx context.Context, in models.Interaction)
	Recommend(ctx context.Context, userID int64, pool []models.Problem, targetDifficulty float64) []models.Problem
	Mastery(ctx context.Context, userID int64) map[string]float64
}

// Ensure Gateway implements the interface
var _ GatewayInterface = (*Gateway)(nil)
