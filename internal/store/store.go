// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists player records in a relational database keyed on
// full name and date of birth, with an append-only log of upsert batches.
package store

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// Store manages the players database.
type Store struct {
	db  *sqlx.DB
	log *logging.Logger
}

// Open applies pending migrations and connects to the database described
// by cfg. SQLite parent directories are created as needed.
func Open(ctx context.Context, cfg types.StoreConfig, log *logging.Logger) (*Store, error) {
	if cfg.Driver == "" {
		cfg.Driver = types.DriverSQLite
	}
	if cfg.Driver == types.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	m, err := NewMigrator(cfg, log)
	if err != nil {
		return nil, err
	}
	upErr := m.Up()
	if err := m.Close(); err != nil {
		log.Warn("closing migrator", "error", err)
	}
	if upErr != nil {
		return nil, upErr
	}

	db, err := sqlx.ConnectContext(ctx, string(cfg.Driver), cfg.DSN())
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", cfg.Driver)
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const upsertPlayerQuery = `
INSERT INTO players (
    url, name, full_name, date_of_birth, age, place_of_birth, country_of_birth,
    position, current_club, national_team, appearance_count, goal_count, scraped_at
) VALUES (
    :url, :name, :full_name, :date_of_birth, :age, :place_of_birth, :country_of_birth,
    :position, :current_club, :national_team, :appearance_count, :goal_count, :scraped_at
)
ON CONFLICT (full_name, date_of_birth)
DO UPDATE SET
    url = EXCLUDED.url,
    name = EXCLUDED.name,
    age = EXCLUDED.age,
    place_of_birth = EXCLUDED.place_of_birth,
    country_of_birth = EXCLUDED.country_of_birth,
    position = EXCLUDED.position,
    current_club = EXCLUDED.current_club,
    national_team = EXCLUDED.national_team,
    appearance_count = EXCLUDED.appearance_count,
    goal_count = EXCLUDED.goal_count,
    scraped_at = EXCLUDED.scraped_at`

// NULL birth dates never conflict under the unique key, so those rows are
// matched on full name alone.
const updateUndatedQuery = `
UPDATE players SET
    url = :url,
    name = :name,
    age = :age,
    place_of_birth = :place_of_birth,
    country_of_birth = :country_of_birth,
    position = :position,
    current_club = :current_club,
    national_team = :national_team,
    appearance_count = :appearance_count,
    goal_count = :goal_count,
    scraped_at = :scraped_at
WHERE full_name = :full_name AND date_of_birth IS NULL`

const insertLogQuery = `
INSERT INTO players_log (update_timestamp, updated_players)
VALUES (:update_timestamp, :updated_players)`

// Upsert inserts or updates records in one transaction and appends a batch
// log row. Birth dates are normalized first and records without a capture
// timestamp get the batch time. It returns the number of records written.
func (s *Store) Upsert(ctx context.Context, records []types.PlayerRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin tx for player upsert")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	batchTime := time.Now()
	for _, rec := range records {
		if rec.DateOfBirth != nil {
			dob := NormalizeBirthDate(*rec.DateOfBirth)
			rec.DateOfBirth = &dob
		}
		if rec.ScrapedAt.IsZero() {
			rec.ScrapedAt = batchTime
		}
		if err := upsertOne(ctx, tx, rec); err != nil {
			return 0, errors.Wrapf(err, "upsert player %q", rec.FullName)
		}
	}

	entry := types.BatchLogEntry{UpdatedAt: batchTime, UpdatedPlayers: len(records)}
	if _, err := tx.NamedExecContext(ctx, insertLogQuery, entry); err != nil {
		return 0, errors.Wrap(err, "insert players_log row")
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit player upsert tx")
	}

	s.log.Info("players upserted", "count", len(records))
	return len(records), nil
}

func upsertOne(ctx context.Context, tx *sqlx.Tx, rec types.PlayerRecord) error {
	if rec.DateOfBirth == nil {
		res, err := tx.NamedExecContext(ctx, updateUndatedQuery, rec)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return nil
		}
	}
	_, err := tx.NamedExecContext(ctx, upsertPlayerQuery, rec)
	return err
}

// List returns all stored players ordered by name.
func (s *Store) List(ctx context.Context) ([]types.PlayerRecord, error) {
	const query = `
SELECT url, name, full_name, date_of_birth, age, place_of_birth, country_of_birth,
       position, current_club, national_team, appearance_count, goal_count, scraped_at
FROM players
ORDER BY name, full_name`

	var records []types.PlayerRecord
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, errors.Wrap(err, "list players")
	}
	return records, nil
}

// Log returns the upsert batch log, oldest first.
func (s *Store) Log(ctx context.Context) ([]types.BatchLogEntry, error) {
	const query = `SELECT update_timestamp, updated_players FROM players_log ORDER BY id`

	var entries []types.BatchLogEntry
	if err := s.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, errors.Wrap(err, "list players_log")
	}
	return entries, nil
}

var dottedDate = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// NormalizeBirthDate rewrites a dd.mm.yyyy date as yyyy-mm-dd. Any other
// value is returned unchanged.
func NormalizeBirthDate(s string) string {
	m := dottedDate.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return m[3] + "-" + m[2] + "-" + m[1]
}
