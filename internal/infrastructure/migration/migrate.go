package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies the SQL migrations under migrations/ to a Postgres
// database. It wraps golang-migrate with structured logging and treats
// "no change" as success.
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New creates a Migrator bound to an open Postgres connection. The
// migrations path is read as a file:// source.
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.Info("schema already up to date")
		return nil
	case err != nil:
		return fmt.Errorf("migrate up: %w", err)
	}

	mg.logApplied("migrations applied")
	return nil
}

// Down rolls back every applied migration
func (mg *Migrator) Down() error {
	err := mg.m.Down()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.Info("nothing to roll back")
		return nil
	case err != nil:
		return fmt.Errorf("migrate down: %w", err)
	}

	mg.logger.Info("all migrations rolled back")
	return nil
}

// Steps applies n migrations; a negative n rolls back
func (mg *Migrator) Steps(n int) error {
	err := mg.m.Steps(n)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		mg.logger.Info("schema already up to date")
		return nil
	case err != nil:
		return fmt.Errorf("migrate steps(%d): %w", n, err)
	}

	mg.logApplied("migration steps applied")
	return nil
}

// Version reports the current schema version. A database with no applied
// migrations reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded schema version without running any SQL.
// Only useful for repairing a dirty migration state.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("forcing schema version", zap.Int("version", version))

	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (mg *Migrator) logApplied(msg string) {
	version, dirty, err := mg.Version()
	if err != nil {
		mg.logger.Warn("could not read schema version after migration", zap.Error(err))
		return
	}
	mg.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
