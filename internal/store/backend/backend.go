// Package backend opens the storage implementation named by a database URL.
package backend

import (
	"context"
	"strings"

	"github.com/jonathan/application-tracker/internal/db"
	"github.com/jonathan/application-tracker/internal/sqlite"
	"github.com/jonathan/application-tracker/internal/store"
)

// Open connects to the database at databaseURL. URLs starting with "sqlite:" or "file:",
// and ":memory:", select the embedded SQLite backend; anything else is handed to Postgres.
// Migrations are not applied.
func Open(ctx context.Context, databaseURL string) (store.Store, error) {
	if path, ok := SQLitePath(databaseURL); ok {
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	pg, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return pg, nil
}

// SQLitePath reports whether databaseURL names a SQLite database and returns its path.
func SQLitePath(databaseURL string) (string, bool) {
	switch {
	case databaseURL == sqlite.MemoryDSN:
		return sqlite.MemoryDSN, true
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return orMemory(strings.TrimPrefix(databaseURL, "sqlite://")), true
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return orMemory(strings.TrimPrefix(databaseURL, "sqlite:")), true
	case strings.HasPrefix(databaseURL, "file:"):
		return orMemory(strings.TrimPrefix(databaseURL, "file:")), true
	}
	return "", false
}

func orMemory(path string) string {
	if path == "" {
		return sqlite.MemoryDSN
	}
	return path
}
