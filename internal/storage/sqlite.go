package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ternarybob/arbor"
)

// sqliteChunkSize bounds the statements per transaction on the local path.
const sqliteChunkSize = 1000

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL,
		slug TEXT NOT NULL,
		ats TEXT NOT NULL,
		url TEXT NOT NULL,
		company_url TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		country_code TEXT NOT NULL DEFAULT '',
		posted TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS job_departments (job_id TEXT NOT NULL, name TEXT NOT NULL, PRIMARY KEY (job_id, name))`,
	`CREATE TABLE IF NOT EXISTS job_offices (job_id TEXT NOT NULL, name TEXT NOT NULL, PRIMARY KEY (job_id, name))`,
	`CREATE TABLE IF NOT EXISTS job_tags (job_id TEXT NOT NULL, name TEXT NOT NULL, PRIMARY KEY (job_id, name))`,
	`CREATE TABLE IF NOT EXISTS job_degree_levels (job_id TEXT NOT NULL, name TEXT NOT NULL, PRIMARY KEY (job_id, name))`,
	`CREATE TABLE IF NOT EXISTS job_subject_areas (job_id TEXT NOT NULL, name TEXT NOT NULL, PRIMARY KEY (job_id, name))`,
	`CREATE TABLE IF NOT EXISTS countries (code TEXT PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS regions (id TEXT PRIMARY KEY, country_code TEXT NOT NULL, name TEXT NOT NULL)`,
}

// SQLiteStore is the local development adapter. It binds parameters
// natively through the driver rather than rendering them into the SQL.
type SQLiteStore struct {
	db     *sql.DB
	logger arbor.ILogger
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func NewSQLiteStore(path string, logger arbor.ILogger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	logger.Debug().Str("path", path).Msg("SQLite store ready")
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) ExecuteBatch(ctx context.Context, queries []Query) error {
	for start := 0; start < len(queries); start += sqliteChunkSize {
		end := min(start+sqliteChunkSize, len(queries))

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		for _, q := range queries[start:end] {
			if _, err := tx.ExecContext(ctx, q.SQL, q.Params...); err != nil {
				tx.Rollback()
				return fmt.Errorf("statement failed: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit batch: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to query existing ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) InitializeGeoTables(ctx context.Context, countries map[string]string, regions map[string]string) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM countries").Scan(&count); err != nil {
		return fmt.Errorf("failed to count countries: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int("countries", count).Msg("Geo tables already populated, skipping")
		return nil
	}

	s.logger.Info().
		Int("countries", len(countries)).
		Int("regions", len(regions)).
		Msg("Populating geo reference tables")
	return s.ExecuteBatch(ctx, BuildGeoQueries(countries, regions))
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
