package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/set-night/shoplab/internal/domain"
)

// PostgresStore keeps stage configs and answer documents as JSONB rows.
// Writes replace the whole document, so concurrent writers resolve as
// last-write-wins at the row level.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetStage(ctx context.Context, experimentID, stageID string) (*domain.StageConfig, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT config FROM stages WHERE experiment_id = $1 AND stage_id = $2`,
		experimentID, stageID,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}

	var stage domain.StageConfig
	if err := json.Unmarshal(raw, &stage); err != nil {
		return nil, fmt.Errorf("decode stage config: %w", err)
	}
	return &stage, nil
}

func (s *PostgresStore) PutStage(ctx context.Context, experimentID string, stage *domain.StageConfig) error {
	raw, err := json.Marshal(stage)
	if err != nil {
		return fmt.Errorf("encode stage config: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO stages (experiment_id, stage_id, config)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (experiment_id, stage_id)
		 DO UPDATE SET config = EXCLUDED.config, updated_at = now()`,
		experimentID, stage.ID, raw,
	)
	if err != nil {
		return fmt.Errorf("put stage: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAnswer(ctx context.Context, experimentID, participantID, stageID string) (*domain.ParticipantAnswer, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT answer FROM participant_answers
		 WHERE experiment_id = $1 AND participant_id = $2 AND stage_id = $3`,
		experimentID, participantID, stageID,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get answer: %w", err)
	}

	var answer domain.ParticipantAnswer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	return &answer, nil
}

func (s *PostgresStore) PutAnswer(ctx context.Context, experimentID, participantID, stageID string, answer *domain.ParticipantAnswer) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO participant_answers (experiment_id, participant_id, stage_id, answer)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (experiment_id, participant_id, stage_id)
		 DO UPDATE SET answer = EXCLUDED.answer, updated_at = now()`,
		experimentID, participantID, stageID, raw,
	)
	if err != nil {
		return fmt.Errorf("put answer: %w", err)
	}
	return nil
}
