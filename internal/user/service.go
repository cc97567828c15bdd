package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pinxesplit/api/pkg/middleware"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// Service handles user business logic
type Service struct {
	repo *Repository
	jwt  *middleware.JWTManager
}

// NewService creates a new user service with dependencies injected
func NewService(repo *Repository, jwt *middleware.JWTManager) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Register creates a new account with a bcrypt-hashed password and returns
// a session token for it.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, string, error) {
	if len(req.Password) < 8 {
		return nil, "", ErrWeakPassword
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, req.Email, req.Name, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns a session token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, string, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update modifies profile fields of an existing user
func (s *Service) Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}
