package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
)

type interactionRepository struct {
	db *sql.DB
}

// NewInteractionRepository creates a new InteractionRepository implementation
func NewInteractionRepository(db *sql.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Insert(ctx context.Context, in models.Interaction) (*models.Interaction, error) {
	log := logger.FromContext(ctx).WithPrefix("interaction_repo")
	log.Debug("inserting interaction: user_id=%d, problem_id=%d, phase=%s, correct=%t",
		in.UserID, in.ProblemID, in.Phase, in.Correct)

	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	if in.Attempts == 0 {
		in.Attempts = 1
	}

	var mcqScore sql.NullInt64
	if in.MCQScore != nil {
		mcqScore = sql.NullInt64{Int64: int64(*in.MCQScore), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO interactions (user_id, problem_id, skills, correct, phase, time_spent, hints_used, attempts, mcq_score, code_submitted, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.UserID, in.ProblemID, marshalStrings(in.Skills), in.Correct, in.Phase,
		in.TimeSpent, in.HintsUsed, in.Attempts, mcqScore, in.CodeSubmitted, in.CreatedAt)
	if err != nil {
		log.Error("failed to insert interaction: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get interaction id: %v", err)
		return nil, err
	}

	in.ID = id
	log.Debug("interaction inserted: id=%d", id)
	return &in, nil
}

func interactionWhere(query squirrel.SelectBuilder, filter models.InteractionFilter) squirrel.SelectBuilder {
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.ProblemID != 0 {
		query = query.Where(squirrel.Eq{"problem_id": filter.ProblemID})
	}
	if filter.Correct != nil {
		query = query.Where(squirrel.Eq{"correct": *filter.Correct})
	}
	if filter.Phase != "" {
		query = query.Where(squirrel.Eq{"phase": filter.Phase})
	}
	return query
}

func (r *interactionRepository) List(ctx context.Context, filter models.InteractionFilter) ([]models.Interaction, error) {
	log := logger.FromContext(ctx).WithPrefix("interaction_repo")
	log.Debug("listing interactions: user_id=%d, problem_id=%d, phase=%s",
		filter.UserID, filter.ProblemID, filter.Phase)

	query := sqlBuilder.Select(
		"id", "user_id", "problem_id", "skills", "correct", "phase",
		"time_spent", "hints_used", "attempts", "mcq_score", "code_submitted", "created_at",
	).From("interactions")

	query = interactionWhere(query, filter)

	// Newest first; id breaks ties for events recorded in the same instant.
	query = query.OrderBy("created_at DESC", "id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list interactions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var interactions []models.Interaction
	for rows.Next() {
		var in models.Interaction
		var skills string
		var mcqScore sql.NullInt64
		if err := rows.Scan(&in.ID, &in.UserID, &in.ProblemID, &skills, &in.Correct, &in.Phase,
			&in.TimeSpent, &in.HintsUsed, &in.Attempts, &mcqScore, &in.CodeSubmitted, &in.CreatedAt); err != nil {
			log.Error("failed to scan interaction row: %v", err)
			return nil, err
		}
		in.Skills = unmarshalStrings(skills)
		if mcqScore.Valid {
			score := int(mcqScore.Int64)
			in.MCQScore = &score
		}
		interactions = append(interactions, in)
	}
	log.Debug("found %d interactions", len(interactions))
	return interactions, rows.Err()
}

func (r *interactionRepository) Count(ctx context.Context, filter models.InteractionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("interaction_repo")

	query := interactionWhere(sqlBuilder.Select("COUNT(*)").From("interactions"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count interactions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *interactionRepository) DistinctProblemIDs(ctx context.Context, filter models.InteractionFilter) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("interaction_repo")
	log.Debug("listing distinct problem ids: user_id=%d, phase=%s", filter.UserID, filter.Phase)

	query := interactionWhere(sqlBuilder.Select("DISTINCT problem_id").From("interactions"), filter)
	query = query.OrderBy("problem_id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query distinct problems: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan problem id: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	log.Debug("found %d distinct problems", len(ids))
	return ids, rows.Err()
}
