package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/config"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
)

// UserService provides business logic for user authentication operations
type UserService struct {
	users          store.IdentityStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(users store.IdentityStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		users:          users,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	passwordHash, err := s.hash(req.Password, "password")
	if err != nil {
		return nil, err
	}

	nu := types.NewUser{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
	}
	if req.ProfileImageURL != "" {
		nu.ProfileImageURL = &req.ProfileImageURL
	}

	user, err := s.users.CreateUser(ctx, nu)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// Unknown email and wrong password look the same to the caller.
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrInvalidCredentials{}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return user, nil
}

// GetUser returns the account behind an authenticated identity.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrUserNotFound{UserID: userID}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdatePassword updates a user's password
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, user.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.hash(newPassword, "newPassword")
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &ErrUserNotFound{UserID: userID}
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// hash reports an over-long password against field as a validation error.
func (s *UserService) hash(password, field string) (string, error) {
	hash, err := s.passwordConfig.HashPassword(password)
	if err != nil {
		if errors.Is(err, config.ErrPasswordTooLong) {
			return "", &ErrValidation{Field: field, Message: field + " is too long"}
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
