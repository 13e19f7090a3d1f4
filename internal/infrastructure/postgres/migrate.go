package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// newMigrator opens its own connection so closing the migrator never closes
// the application pool.
func newMigrator(connStr string) (*migrate.Migrate, func(), error) {
	migrateDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, nil, fmt.Errorf("open migration database: %w", err)
	}

	driver, err := migratepg.WithInstance(migrateDB, &migratepg.Config{})
	if err != nil {
		migrateDB.Close()
		return nil, nil, fmt.Errorf("create postgres driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		migrateDB.Close()
		return nil, nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		migrateDB.Close()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return m, func() { m.Close() }, nil
}

func RunMigrations(connStr string) error {
	m, closeFn, err := newMigrator(connStr)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// RollbackMigrations reverts the most recent migration.
func RollbackMigrations(connStr string) error {
	m, closeFn, err := newMigrator(connStr)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migration: %w", err)
	}
	return nil
}
