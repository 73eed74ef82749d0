package jobs

import "github.com/dhruvbhalode/capstone/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueForward(interaction models.Interaction) error
}
