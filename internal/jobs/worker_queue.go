package jobs

import (
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	forwardPool *worker.Pool
	forwarder   worker.InteractionForwarder
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(forwardPool *worker.Pool, forwarder worker.InteractionForwarder) JobQueue {
	return &WorkerQueue{
		forwardPool: forwardPool,
		forwarder:   forwarder,
	}
}

func (q *WorkerQueue) EnqueueForward(interaction models.Interaction) error {
	return q.forwardPool.Submit(&worker.ForwardInteractionJob{
		Forwarder:   q.forwarder,
		Interaction: interaction,
	})
}
