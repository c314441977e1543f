// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"embed"
	"io/fs"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/pkg/types"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Migrator applies the embedded schema migrations for one database.
// It holds its own connection and must be closed.
type Migrator struct {
	m   *migrate.Migrate
	log *logging.Logger
}

// NewMigrator opens a migrator for the database described by cfg.
func NewMigrator(cfg types.StoreConfig, log *logging.Logger) (*Migrator, error) {
	dir := "migrations/sqlite"
	if cfg.Driver == types.DriverPostgres {
		dir = "migrations/postgres"
	}
	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", dir)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return nil, errors.Wrap(err, "creating migration source")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrateURL())
	if err != nil {
		return nil, errors.Wrap(err, "create migrator")
	}
	return &Migrator{m: m, log: log}, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func (m *Migrator) Up() error {
	err := m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Debug("no migration changes")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	m.log.Info("migrations applied")
	return nil
}

// Down rolls back steps migrations.
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return errors.Newf("down steps must be > 0, got %d", steps)
	}
	if err := m.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrapf(err, "roll back %d migration(s)", steps)
	}
	m.log.Info("migrations rolled back", "steps", steps)
	return nil
}

// Version returns the applied schema version. A database without
// migrations reports version 0.
func (m *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "read version")
	}
	return version, dirty, nil
}

// Close releases the migrator's source and database handles.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return errors.Wrap(srcErr, "close migration source")
	}
	return errors.Wrap(dbErr, "close migration db")
}
