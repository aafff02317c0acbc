package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardcheck/internal/liveness"
	"cardcheck/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS liveness_results (
	id             UUID PRIMARY KEY,
	sequence_id    UUID NULL,
	frame_count    INTEGER NOT NULL,
	is_live        BOOLEAN NOT NULL,
	confidence     DOUBLE PRECISION NOT NULL,
	score          INTEGER NOT NULL,
	max_score      INTEGER NOT NULL,
	recommendation TEXT NOT NULL DEFAULT '',
	reason         TEXT NOT NULL DEFAULT '',
	analysis       JSONB NULL,
	request_id     TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS liveness_results_created_at_idx ON liveness_results (created_at DESC);
`

const selectColumns = `id, sequence_id, frame_count, is_live, confidence, score, max_score,
	recommendation, reason, analysis, request_id, created_at`

// uniqueViolation is the Postgres SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// PostgresResultStore persists classification records in liveness_results.
type PostgresResultStore struct {
	pool *pgxpool.Pool
}

func NewPostgresResultStore(pool *pgxpool.Pool) *PostgresResultStore {
	return &PostgresResultStore{pool: pool}
}

// EnsureSchema creates the results table and index if they are missing.
func (s *PostgresResultStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure liveness_results schema: %w", err)
	}
	return nil
}

func (s *PostgresResultStore) Save(ctx context.Context, record *liveness.ClassificationRecord) error {
	var analysis []byte
	if record.Result.Analysis != nil {
		var err error
		if analysis, err = json.Marshal(record.Result.Analysis); err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
	}

	sequenceID := uuid.NullUUID{}
	if record.SequenceID != nil {
		sequenceID = uuid.NullUUID{UUID: *record.SequenceID, Valid: true}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO liveness_results (`+selectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		record.ID,
		sequenceID,
		record.FrameCount,
		record.Result.IsLive,
		record.Result.Confidence,
		record.Result.Score,
		record.Result.MaxScore,
		string(record.Result.Recommendation),
		record.Result.Reason,
		analysis,
		record.RequestID,
		record.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert liveness result: %w", err)
	}
	return nil
}

func (s *PostgresResultStore) FindByID(ctx context.Context, id uuid.UUID) (*liveness.ClassificationRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM liveness_results WHERE id = $1`, id)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find liveness result: %w", err)
	}
	return record, nil
}

// ListRecent returns up to limit records, newest first.
func (s *PostgresResultStore) ListRecent(ctx context.Context, limit int) ([]*liveness.ClassificationRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM liveness_results ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list liveness results: %w", err)
	}
	defer rows.Close()

	var out []*liveness.ClassificationRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan liveness result: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list liveness results: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (*liveness.ClassificationRecord, error) {
	var (
		record         liveness.ClassificationRecord
		sequenceID     uuid.NullUUID
		recommendation string
		analysis       []byte
	)
	err := row.Scan(
		&record.ID,
		&sequenceID,
		&record.FrameCount,
		&record.Result.IsLive,
		&record.Result.Confidence,
		&record.Result.Score,
		&record.Result.MaxScore,
		&recommendation,
		&record.Result.Reason,
		&analysis,
		&record.RequestID,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Result.Recommendation = liveness.Recommendation(recommendation)
	if sequenceID.Valid {
		record.SequenceID = &sequenceID.UUID
	}
	if analysis != nil {
		var a liveness.Analysis
		if err := json.Unmarshal(analysis, &a); err != nil {
			return nil, fmt.Errorf("unmarshal analysis: %w", err)
		}
		record.Result.Analysis = &a
	}
	return &record, nil
}
