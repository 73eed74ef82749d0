package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: email=%s", u.Email)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (name, email, password_hash, avatar_url, solved_problems, accuracy)
VALUES (?, ?, ?, ?, ?, ?)
`, u.Name, u.Email, u.PasswordHash, u.AvatarURL, u.SolvedProblems, u.Accuracy)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, avatar_url, solved_problems, accuracy, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarURL, &u.SolvedProblems, &u.Accuracy, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by email: %s", email)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, avatar_url, solved_problems, accuracy, created_at
FROM users
WHERE email = ?
`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarURL, &u.SolvedProblems, &u.Accuracy, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: email=%s", email)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by email: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateProgress(ctx context.Context, id int64, solvedProblems, accuracy int) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user progress: id=%d, solved=%d, accuracy=%d", id, solvedProblems, accuracy)

	_, err := r.db.ExecContext(ctx, `
UPDATE users
SET solved_problems = ?, accuracy = ?
WHERE id = ?
`, solvedProblems, accuracy, id)
	if err != nil {
		log.Error("failed to update user progress: %v", err)
	}
	return err
}
