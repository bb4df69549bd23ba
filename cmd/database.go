package cmd

import (
	"fmt"

	"foodfast/internal/adapters/out/postgres"

	"gorm.io/gorm"
)

// OpenDatabase connects to the configured store and applies the migrations.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case DriverSQLite:
		db, err = postgres.OpenSQLite(cfg.SQLitePath)
	default:
		db, err = postgres.OpenPostgres(cfg.PostgresDSN())
	}
	if err != nil {
		return nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", cfg.DBDriver, err)
	}

	return db, nil
}
