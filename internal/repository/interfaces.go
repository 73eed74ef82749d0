package repository

import (
	"context"

	"github.com/dhruvbhalode/capstone/internal/models"
)

// UserRepository handles user account data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) (int64, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProgress(ctx context.Context, id int64, solvedProblems, accuracy int) error
}

// ProblemRepository handles the read-mostly problem catalogue
type ProblemRepository interface {
	Get(ctx context.Context, id int64) (*models.Problem, error)
	List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error)
	Count(ctx context.Context, filter models.ProblemFilter) (int, error)
	Insert(ctx context.Context, problem models.Problem) (int64, error)
}

// InteractionRepository is the append-only interaction log. There is no update
// or delete: aggregates are always recomputable from what is stored here.
type InteractionRepository interface {
	Insert(ctx context.Context, interaction models.Interaction) (*models.Interaction, error)
	List(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error)
	Count(ctx context.Context, filter models.InteractionFilter) (int, error)
	DistinctProblemIDs(ctx context.Context, filter models.InteractionFilter) ([]int64, error)
}
