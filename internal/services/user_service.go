package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhruvbhalode/capstone/internal/auth"
	"github.com/dhruvbhalode/capstone/internal/errors"
	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
)

// UserService handles account creation and credential checks
type UserService interface {
	Signup(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug("signing up user: email=%s", email)

	if name == "" {
		return nil, "", errors.NewValidationError("name", "is required")
	}
	if email == "" {
		return nil, "", errors.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, "", errors.NewValidationError("password", "is required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to check existing user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, "", errors.NewConflictError("user with this email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    fmt.Sprintf("https://api.pravatar.cc/150?u=%s", email),
	}
	id, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	created, err := s.userRepo.Get(ctx, id)
	if err != nil || created == nil {
		log.Error("failed to load created user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	log.Info("user signed up: id=%d", created.ID)
	return created, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug("logging in user: email=%s", email)

	if email == "" || password == "" {
		return nil, "", errors.NewValidationError("credentials", "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	// Same response for unknown email and wrong password.
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", errors.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	log.Info("user logged in: id=%d", user.ID)
	return user, token, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}
