package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `run_id, character_id, content_id, stage_id, wave_id, wave_number,
	victory, level, exp, score, kills, waves_cleared, damage_dealt, duration_ms, finished_at`

// RunRepository handles run-record persistence to PostgreSQL.
type RunRepository struct {
	pool *pgxpool.Pool
}

var _ RecordStore = (*RunRepository)(nil)

// NewRunRepository creates a new run repository.
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Save inserts rec. Saving an existing run id overwrites the row.
func (r *RunRepository) Save(ctx context.Context, rec RunRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO run_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (run_id) DO UPDATE SET
			character_id = EXCLUDED.character_id,
			content_id = EXCLUDED.content_id,
			stage_id = EXCLUDED.stage_id,
			wave_id = EXCLUDED.wave_id,
			wave_number = EXCLUDED.wave_number,
			victory = EXCLUDED.victory,
			level = EXCLUDED.level,
			exp = EXCLUDED.exp,
			score = EXCLUDED.score,
			kills = EXCLUDED.kills,
			waves_cleared = EXCLUDED.waves_cleared,
			damage_dealt = EXCLUDED.damage_dealt,
			duration_ms = EXCLUDED.duration_ms,
			finished_at = EXCLUDED.finished_at`,
		rec.RunID, rec.CharacterID, rec.ContentID, rec.StageID, rec.WaveID, rec.WaveNumber,
		rec.Victory, rec.Level, rec.Exp, rec.Score, rec.Kills, rec.WavesCleared,
		rec.DamageDealt, rec.Duration.Milliseconds(), toMillis(rec.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("saving run record %s: %w", rec.RunID, err)
	}
	return nil
}

// Get loads one run record.
func (r *RunRepository) Get(ctx context.Context, runID string) (RunRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM run_records WHERE run_id = $1`, runID)

	rec, err := scanPgRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("run %s: %w", runID, ErrRecordNotFound)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("querying run record %s: %w", runID, err)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM run_records ORDER BY finished_at DESC, run_id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		rec, err := scanPgRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run records: %w", err)
	}
	return recs, nil
}

// BestScore returns the highest score of a character. ok is false when the
// character has no runs.
func (r *RunRepository) BestScore(ctx context.Context, characterID string) (int64, bool, error) {
	var best *int64
	err := r.pool.QueryRow(ctx,
		`SELECT MAX(score) FROM run_records WHERE character_id = $1`, characterID).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("querying best score of %q: %w", characterID, err)
	}
	if best == nil {
		return 0, false, nil
	}
	return *best, true, nil
}

func scanPgRecord(row pgx.Row) (RunRecord, error) {
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
