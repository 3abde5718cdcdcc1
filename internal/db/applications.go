package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/application-tracker/internal/store"
	"github.com/jonathan/application-tracker/internal/types"
	"golang.org/x/sync/errgroup"
)

const applicationColumns = `id, user_id, company, role, location, job_type, status, date_applied,
	link, salary_min, salary_max, description, notes, created_at, updated_at`

func scanApplication(row pgx.Row) (*types.Application, error) {
	var app types.Application
	err := row.Scan(&app.ID, &app.UserID, &app.Company, &app.Role, &app.Location, &app.JobType,
		&app.Status, &app.DateApplied, &app.Link, &app.SalaryMin, &app.SalaryMax,
		&app.Description, &app.Notes, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if !app.Status.Valid() {
		return nil, fmt.Errorf("application %d has unknown status %q", app.ID, app.Status)
	}
	return &app, nil
}

// ListApplications returns the user's applications, most recently applied first.
// Undated rows sort last; ties fall back to the newest id.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1
		 ORDER BY date_applied DESC NULLS LAST, id DESC`,
		userID,
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
// The row and its interviews are read concurrently. Ownership is not checked.
func (db *DB) GetApplication(ctx context.Context, id int64) (*types.ApplicationWithInterviews, error) {
	var (
		app        *types.Application
		interviews []types.Interview
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		app, err = scanApplication(db.pool.QueryRow(gctx,
			`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get application: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		interviews, err = db.listInterviews(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.ApplicationWithInterviews{Application: *app, Interviews: interviews}, nil
}

// CreateApplication inserts an application owned by userID.
func (db *DB) CreateApplication(ctx context.Context, userID uuid.UUID, req *types.CreateApplicationRequest) (*types.Application, error) {
	app, err := scanApplication(db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, company, role, location, job_type, status, date_applied,
			link, salary_min, salary_max, description, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()), $8, $9, $10, $11, $12)
		 RETURNING `+applicationColumns,
		userID, req.Company, req.Role, req.Location, req.JobType, string(req.StatusOrDefault()),
		req.DateApplied.Ptr(), req.Link, req.SalaryMin.Ptr(), req.SalaryMax.Ptr(), req.Description, req.Notes,
	))
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return nil, fmt.Errorf("failed to create application: unknown user %s: %w", userID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// UpdateApplication applies the present fields of req to the application when it belongs to userID.
// updated_at is refreshed even when req carries no changes. A missing or foreign row is store.ErrNotFound.
func (db *DB) UpdateApplication(ctx context.Context, id int64, userID uuid.UUID, req *types.UpdateApplicationRequest) (*types.Application, error) {
	changes := req.Changes()
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+2)
	for _, c := range changes {
		args = append(args, c.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", c.Column, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id, userID)

	app, err := scanApplication(db.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE applications SET %s
		 WHERE id = $%d AND user_id = $%d
		 RETURNING `+applicationColumns, strings.Join(sets, ", "), len(args)-1, len(args)),
		args...,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// DeleteApplication removes the application and, by cascade, its interviews.
// Deleting a missing or foreign row is not an error.
func (db *DB) DeleteApplication(ctx context.Context, id int64, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

// GetStats counts the user's applications by status.
func (db *DB) GetStats(ctx context.Context, userID uuid.UUID) (types.Stats, error) {
	apps, err := db.ListApplications(ctx, userID)
	if err != nil {
		return types.Stats{}, err
	}
	return types.ComputeStats(apps), nil
}
