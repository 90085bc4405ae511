// Package storage persists workout templates and records for the reference
// server. Both stores keep whole records as JSON documents — the wire format
// is document-shaped, and the server never queries inside a set.
package storage

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/claude/setlog/internal/models"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Store is the persistence interface behind the reference server's handlers.
type Store interface {
	ListTemplates(ctx context.Context, userID string) ([]models.Template, error)
	ListHistory(ctx context.Context, userID string) ([]models.WorkoutRecord, error)
	RecentHistory(ctx context.Context, userID, templateID string, limit int) ([]models.WorkoutRecord, error)
	InsertWorkout(ctx context.Context, rec models.WorkoutRecord) error
	InsertTemplate(ctx context.Context, tpl models.Template) error
	DeleteTemplate(ctx context.Context, userID, templateID string) (bool, error)
	Close() error
}

// Open connects the store for the given driver. For sqlite, dsn is the
// database file path; for postgres, a connection string.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		return openSQLite(ctx, dsn)
	case "postgres":
		return openPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// RunMigrations applies all pending migrations for the given driver.
func RunMigrations(driver, dsn string) error {
	sub, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("locating %s migrations: %w", driver, err)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("reading %s migrations: %w", driver, err)
	}

	url := dsn
	if driver == "sqlite" {
		url = "sqlite://" + dsn
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
