package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// logPragmas configure a connection for one writer appending moves while
// readers replay or list games.
var logPragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// migration upgrades a move log from version-1 to version, where version is
// its position in migrations plus one.
type migration struct {
	name string
	stmt string
}

// migrations run in order on databases whose user_version is behind.
// Append only: a log written by an older build must upgrade in place.
var migrations = []migration{
	{
		name: "index games by finished",
		stmt: `CREATE INDEX IF NOT EXISTS idx_games_finished ON games(finished, id)`,
	},
}

// currentSchemaVersion is the user_version of a fully migrated move log.
var currentSchemaVersion = len(migrations)

// Store is a SQLite-backed log of games and their moves.
type Store struct {
	db *sql.DB
}

// Open opens the move log at path, creating the file and tables if needed
// and upgrading an older log. Opening the same path twice is safe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// AppendMove checks seq against the last stored row, which only holds
	// with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := prepareLog(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func prepareLog(db *sql.DB) error {
	for _, pragma := range logPragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragmas: %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// migrate runs every migration past the log's user_version and records the
// new version. A log from a newer build keeps its version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		m := migrations[i]
		if _, err := db.Exec(m.stmt); err != nil {
			return fmt.Errorf("migrate to v%d (%s): %w", i+1, m.name, err)
		}
	}
	if version >= currentSchemaVersion {
		return nil
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// verifyPragma reports whether pragma name currently reads expected.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
