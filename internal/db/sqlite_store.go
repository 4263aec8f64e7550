package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists run records in a local SQLite file.
type SQLiteStore struct {
	sqlDB *sql.DB
}

var _ RecordStore = (*SQLiteStore)(nil)

// OpenSQLite opens a SQLite store at path and applies the embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB, dialectSQLite); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts rec. Saving an existing run id overwrites the row.
func (s *SQLiteStore) Save(ctx context.Context, rec RunRecord) error {
	if strings.TrimSpace(rec.RunID) == "" {
		return fmt.Errorf("run id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR REPLACE INTO run_records (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.CharacterID, rec.ContentID, rec.StageID, rec.WaveID, rec.WaveNumber,
		rec.Victory, rec.Level, rec.Exp, rec.Score, rec.Kills, rec.WavesCleared,
		rec.DamageDealt, rec.Duration.Milliseconds(), toMillis(rec.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("save run record %s: %w", rec.RunID, err)
	}
	return nil
}

// Get loads one run record.
func (s *SQLiteStore) Get(ctx context.Context, runID string) (RunRecord, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM run_records WHERE run_id = ?`, runID)

	rec, err := scanSQLRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("run %s: %w", runID, ErrRecordNotFound)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run record %s: %w", runID, err)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM run_records ORDER BY finished_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		rec, err := scanSQLRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}
	return recs, nil
}

// BestScore returns the highest score of a character. ok is false when the
// character has no runs.
func (s *SQLiteStore) BestScore(ctx context.Context, characterID string) (int64, bool, error) {
	var best sql.NullInt64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT MAX(score) FROM run_records WHERE character_id = ?`, characterID).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("best score of %q: %w", characterID, err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return best.Int64, true, nil
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLRecord(row sqlScanner) (RunRecord, error) {
	var (
		rec        RunRecord
		durationMs int64
		finishedAt int64
	)
	err := row.Scan(
		&rec.RunID, &rec.CharacterID, &rec.ContentID, &rec.StageID, &rec.WaveID, &rec.WaveNumber,
		&rec.Victory, &rec.Level, &rec.Exp, &rec.Score, &rec.Kills, &rec.WavesCleared,
		&rec.DamageDealt, &durationMs, &finishedAt,
	)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.FinishedAt = fromMillis(finishedAt)
	return rec, nil
}
