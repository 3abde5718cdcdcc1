package main

import (
	"context"
	"fmt"

	"github.com/jonathan/application-tracker/internal/store/backend"
	"github.com/spf13/cobra"
)

var migrateDatabaseURL string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "Database URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(migrateCmd)
}

// migrationLister is implemented by backends that record applied migration versions.
type migrationLister interface {
	AppliedMigrations(ctx context.Context) ([]int, error)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	databaseURL, err := databaseURLFrom(migrateDatabaseURL)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := backend.Open(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if lister, ok := st.(migrationLister); ok {
		versions, err := lister.AppliedMigrations(ctx)
		if err != nil {
			return fmt.Errorf("failed to list migrations: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied migrations: %v\n", versions)
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}
