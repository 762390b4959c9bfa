package licensekey

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Import SQLite driver for database/sql
)

type sqliteStore struct{ db *sql.DB }

// OpenSQLiteStore opens/creates a SQLite DB and ensures schema + PRAGMAs.
//
// Seeds are stored as the int64 with the same bit pattern, since SQLite
// integers are signed.
func OpenSQLiteStore(dsn string) (RevocationStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", p, err)
		}
	}
	schema := `
CREATE TABLE IF NOT EXISTS revocations (
  seed       INTEGER PRIMARY KEY,  -- uint64 seed, two's complement
  revoked_at INTEGER NOT NULL      -- unix nanos of the first revocation
);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// Add inserts seed; re-adding keeps the original revocation time.
func (s *sqliteStore) Add(seed uint64, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO revocations(seed, revoked_at) VALUES(?, ?) ON CONFLICT(seed) DO NOTHING`,
		int64(seed), at.UnixNano())
	if err != nil {
		return fmt.Errorf("insert revocation: %w", err)
	}
	return nil
}

// List returns all revoked seeds ordered by revocation time.
func (s *sqliteStore) List() ([]uint64, error) {
	rows, err := s.db.Query(`SELECT seed FROM revocations ORDER BY revoked_at ASC, seed ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var seed int64
		if err := rows.Scan(&seed); err != nil {
			return nil, err
		}
		out = append(out, uint64(seed))
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
