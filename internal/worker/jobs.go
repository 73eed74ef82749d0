package worker

import (
	"context"

	"github.com/dhruvbhalode/capstone/internal/models"
)

// InteractionForwarder pushes an interaction to the scoring service.
// This interface avoids coupling the pool to the oracle package.
type InteractionForwarder interface {
	Forward(ctx context.Context, in models.Interaction)
}

// ForwardInteractionJob pushes one recorded interaction to the scoring
// service off the request path. Forwarding is advisory enrichment: the
// interaction is already durably stored, so the job itself never fails.
type ForwardInteractionJob struct {
	Forwarder   InteractionForwarder
	Interaction models.Interaction
}

func (j *ForwardInteractionJob) Name() string { return "forward_interaction" }

func (j *ForwardInteractionJob) Run(ctx context.Context) error {
	j.Forwarder.Forward(ctx, j.Interaction)
	return nil
}
