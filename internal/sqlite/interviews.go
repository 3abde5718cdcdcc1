package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
)

const interviewColumns = `id, application_id, date, type, location, notes, created_at`

func scanInterview(row rowScanner) (*types.Interview, error) {
	var (
		iv              types.Interview
		location, notes sql.NullString
		date, createdAt string
	)
	if err := row.Scan(&iv.ID, &iv.ApplicationID, &date, &iv.Type, &location, &notes, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if iv.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	if iv.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	iv.Location = nullString(location)
	iv.Notes = nullString(notes)
	return &iv, nil
}

func (s *Store) listInterviews(ctx context.Context, applicationID int64) ([]types.Interview, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews
		 WHERE application_id = ?
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
// Ownership of the parent is checked by the caller.
func (s *Store) CreateInterview(ctx context.Context, req *types.CreateInterviewRequest) (*types.Interview, error) {
	iv, err := scanInterview(s.db.QueryRowContext(ctx,
		`INSERT INTO interviews (application_id, date, type, location, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+interviewColumns,
		req.ApplicationID.Value, formatTime(req.Date.Time), req.Type, req.Location, req.Notes, s.timestamp(),
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return iv, nil
}

// GetInterview returns a single interview or store.ErrNotFound.
func (s *Store) GetInterview(ctx context.Context, id int64) (*types.Interview, error) {
	iv, err := scanInterview(s.db.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return iv, nil
}

// DeleteInterview removes the interview when its application belongs to userID.
// Anything else is a silent no-op.
func (s *Store) DeleteInterview(ctx context.Context, id int64, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM interviews
		 WHERE id = ?
		   AND application_id IN (SELECT id FROM applications WHERE user_id = ?)`,
		id, userID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	return nil
}
