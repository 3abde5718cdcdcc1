package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
)

const applicationColumns = `id, user_id, company, role, location, job_type, status, date_applied,
	link, salary_min, salary_max, description, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*types.Application, error) {
	var (
		app                     types.Application
		userID                  string
		location, jobType, link sql.NullString
		description, notes      sql.NullString
		dateApplied             sql.NullString
		salaryMin, salaryMax    sql.NullInt64
		createdAt, updatedAt    string
		status                  string
	)
	err := row.Scan(&app.ID, &userID, &app.Company, &app.Role, &location, &jobType, &status, &dateApplied,
		&link, &salaryMin, &salaryMax, &description, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if app.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parsing user id: %w", err)
	}
	if app.DateApplied, err = parseNullTime(dateApplied); err != nil {
		return nil, err
	}
	if app.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if app.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	app.Status = types.Status(status)
	if !app.Status.Valid() {
		return nil, fmt.Errorf("application %d has unknown status %q", app.ID, status)
	}
	app.Location = nullString(location)
	app.JobType = nullString(jobType)
	app.Link = nullString(link)
	app.Description = nullString(description)
	app.Notes = nullString(notes)
	app.SalaryMin = nullInt(salaryMin)
	app.SalaryMax = nullInt(salaryMax)
	return &app, nil
}

// ListApplications returns the user's applications, most recently applied first.
// Undated rows sort last; ties fall back to the newest id.
func (s *Store) ListApplications(ctx context.Context, userID uuid.UUID) ([]types.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = ?
		 ORDER BY date_applied DESC NULLS LAST, id DESC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []types.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}

// GetApplication returns the application with its interviews in date order.
// It does not check ownership.
func (s *Store) GetApplication(ctx context.Context, id int64) (*types.ApplicationWithInterviews, error) {
	app, err := scanApplication(s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	interviews, err := s.listInterviews(ctx, id)
	if err != nil {
		return nil, err
	}
	return &types.ApplicationWithInterviews{Application: *app, Interviews: interviews}, nil
}

// CreateApplication inserts an application owned by userID.
func (s *Store) CreateApplication(ctx context.Context, userID uuid.UUID, req *types.CreateApplicationRequest) (*types.Application, error) {
	now := s.now()
	ts := formatTime(now)
	app, err := scanApplication(s.db.QueryRowContext(ctx,
		`INSERT INTO applications (user_id, company, role, location, job_type, status, date_applied,
			link, salary_min, salary_max, description, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+applicationColumns,
		userID.String(), req.Company, req.Role, req.Location, req.JobType, string(req.StatusOrDefault()),
		formatTime(req.DateAppliedOr(now)), req.Link, req.SalaryMin.Ptr(), req.SalaryMax.Ptr(),
		req.Description, req.Notes, ts, ts,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("failed to create application: unknown user %s: %w", userID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// UpdateApplication applies the present fields of req to the application when it belongs to userID.
// updated_at is refreshed even when req carries no changes. A missing or foreign row is store.ErrNotFound.
func (s *Store) UpdateApplication(ctx context.Context, id int64, userID uuid.UUID, req *types.UpdateApplicationRequest) (*types.Application, error) {
	changes := req.Changes()
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+3)
	for _, c := range changes {
		sets = append(sets, c.Column+" = ?")
		if t, ok := c.Value.(time.Time); ok {
			args = append(args, formatTime(t))
			continue
		}
		args = append(args, c.Value)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.timestamp(), id, userID.String())

	app, err := scanApplication(s.db.QueryRowContext(ctx,
		`UPDATE applications SET `+strings.Join(sets, ", ")+`
		 WHERE id = ? AND user_id = ?
		 RETURNING `+applicationColumns,
		args...,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// DeleteApplication removes the application and, by cascade, its interviews.
// Deleting a missing or foreign row is not an error.
func (s *Store) DeleteApplication(ctx context.Context, id int64, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id = ? AND user_id = ?`, id, userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

// GetStats counts the user's applications by status.
func (s *Store) GetStats(ctx context.Context, userID uuid.UUID) (types.Stats, error) {
	apps, err := s.ListApplications(ctx, userID)
	if err != nil {
		return types.Stats{}, err
	}
	return types.ComputeStats(apps), nil
}
