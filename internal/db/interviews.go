package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
)

const interviewColumns = `id, application_id, date, type, location, notes, created_at`

func scanInterview(row pgx.Row) (*types.Interview, error) {
	var iv types.Interview
	if err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.Date, &iv.Type, &iv.Location, &iv.Notes, &iv.CreatedAt); err != nil {
		return nil, err
	}
	return &iv, nil
}

func (db *DB) listInterviews(ctx context.Context, applicationID int64) ([]types.Interview, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+interviewColumns+` FROM interviews
		 WHERE application_id = $1
		 ORDER BY date ASC, id ASC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	interviews := []types.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, *iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interviews: %w", err)
	}
	return interviews, nil
}

// CreateInterview inserts an interview. A missing parent application is store.ErrApplicationNotFound.
func (db *DB) CreateInterview(ctx context.Context, req *types.CreateInterviewRequest) (*types.Interview, error) {
	iv, err := scanInterview(db.pool.QueryRow(ctx,
		`INSERT INTO interviews (application_id, date, type, location, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+interviewColumns,
		req.ApplicationID.Value, req.Date.Time, req.Type, req.Location, req.Notes,
	))
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return nil, store.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return iv, nil
}

// GetInterview returns a single interview or store.ErrNotFound.
func (db *DB) GetInterview(ctx context.Context, id int64) (*types.Interview, error) {
	iv, err := scanInterview(db.pool.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return iv, nil
}

// DeleteInterview removes the interview when its application belongs to userID.
// Anything else is a silent no-op.
func (db *DB) DeleteInterview(ctx context.Context, id int64, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM interviews i
		 USING applications a
		 WHERE i.id = $1 AND i.application_id = a.id AND a.user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	return nil
}
