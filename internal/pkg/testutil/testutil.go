// Package testutil opens migrated databases for tests: a throwaway SQLite file
// for fast tests and a PostgreSQL container for integration suites.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"foodfast/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// OpenSQLite opens a migrated SQLite database in the test's temp dir.
// The connection is closed via t.Cleanup.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := postgres.OpenSQLite(filepath.Join(t.TempDir(), "foodfast.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	if err = postgres.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// PostgresContainer is a running PostgreSQL with the schema applied.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// StartPostgres runs a PostgreSQL container and migrates it.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	pc := &PostgresContainer{Container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pc.Terminate(ctx)
		return nil, err
	}

	if pc.DB, err = postgres.OpenPostgres(dsn); err != nil {
		_ = pc.Terminate(ctx)
		return nil, err
	}

	if err = postgres.Migrate(pc.DB); err != nil {
		_ = pc.Terminate(ctx)
		return nil, err
	}

	return pc, nil
}

// Truncate empties every lifecycle table.
func (pc *PostgresContainer) Truncate() error {
	return pc.DB.Exec("TRUNCATE TABLE drone_reservations, orders, drones").Error
}

func (pc *PostgresContainer) Terminate(ctx context.Context) error {
	if pc.DB != nil {
		if sqlDB, err := pc.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return pc.Container.Terminate(ctx)
}
