// Package store defines the storage capabilities the HTTP layer depends on.
// Implementations live in internal/db (Postgres) and internal/sqlite.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/types"
)

var (
	// ErrNotFound is returned when a row does not exist, or exists but is not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrApplicationNotFound is returned when an interview references an application that does not exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// ApplicationStore persists applications and their interviews.
// Every mutation that takes a userID applies it in the row predicate.
type ApplicationStore interface {
	ListApplications(ctx context.Context, userID uuid.UUID) ([]types.Application, error)
	GetApplication(ctx context.Context, id int64) (*types.ApplicationWithInterviews, error)
	CreateApplication(ctx context.Context, userID uuid.UUID, req *types.CreateApplicationRequest) (*types.Application, error)
	UpdateApplication(ctx context.Context, id int64, userID uuid.UUID, req *types.UpdateApplicationRequest) (*types.Application, error)
	DeleteApplication(ctx context.Context, id int64, userID uuid.UUID) error

	CreateInterview(ctx context.Context, req *types.CreateInterviewRequest) (*types.Interview, error)
	GetInterview(ctx context.Context, id int64) (*types.Interview, error)
	DeleteInterview(ctx context.Context, id int64, userID uuid.UUID) error

	GetStats(ctx context.Context, userID uuid.UUID) (types.Stats, error)
}

// IdentityStore persists the accounts behind bearer tokens.
type IdentityStore interface {
	CreateUser(ctx context.Context, u types.NewUser) (*types.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Store is a backend that serves both capabilities.
type Store interface {
	ApplicationStore
	IdentityStore
	Migrate(ctx context.Context) error
	Close() error
}
