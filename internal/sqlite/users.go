package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
)

const userColumns = `id, email, first_name, last_name, profile_image_url, password_hash, created_at, updated_at`

func scanUser(row rowScanner) (*types.User, error) {
	var (
		u                    types.User
		id                   string
		profileImageURL      sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&id, &u.Email, &u.FirstName, &u.LastName, &profileImageURL, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if u.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing user id: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	u.ProfileImageURL = nullString(profileImageURL)
	return &u, nil
}

// CreateUser inserts a new account. The email is stored lower-cased.
func (s *Store) CreateUser(ctx context.Context, nu types.NewUser) (*types.User, error) {
	ts := s.timestamp()
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, profile_image_url, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+userColumns,
		uuid.New().String(), strings.ToLower(strings.TrimSpace(nu.Email)), nu.FirstName, nu.LastName,
		nu.ProfileImageURL, nu.PasswordHash, ts, ts,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUser returns the account with id or store.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks an account up by email, ignoring case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, s.timestamp(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
