package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/set-night/shoplab/internal/domain"
)

// RedisStore keeps stage configs and answer documents as JSON values, one
// key per document. SET on an existing key overwrites it, giving the same
// last-write-wins behavior as the postgres backend.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func stageKey(experimentID, stageID string) string {
	return fmt.Sprintf("shoplab:stage:%s:%s", experimentID, stageID)
}

func answerKey(experimentID, participantID, stageID string) string {
	return fmt.Sprintf("shoplab:answer:%s:%s:%s", experimentID, participantID, stageID)
}

func (s *RedisStore) GetStage(ctx context.Context, experimentID, stageID string) (*domain.StageConfig, error) {
	raw, err := s.client.Get(ctx, stageKey(experimentID, stageID)).Bytes()
	if err != nil {
		if err == redis.Nil {
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

func (s *RedisStore) PutStage(ctx context.Context, experimentID string, stage *domain.StageConfig) error {
	raw, err := json.Marshal(stage)
	if err != nil {
		return fmt.Errorf("encode stage config: %w", err)
	}
	if err := s.client.Set(ctx, stageKey(experimentID, stage.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("put stage: %w", err)
	}
	return nil
}

func (s *RedisStore) GetAnswer(ctx context.Context, experimentID, participantID, stageID string) (*domain.ParticipantAnswer, error) {
	raw, err := s.client.Get(ctx, answerKey(experimentID, participantID, stageID)).Bytes()
	if err != nil {
		if err == redis.Nil {
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

func (s *RedisStore) PutAnswer(ctx context.Context, experimentID, participantID, stageID string, answer *domain.ParticipantAnswer) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	if err := s.client.Set(ctx, answerKey(experimentID, participantID, stageID), raw, 0).Err(); err != nil {
		return fmt.Errorf("put answer: %w", err)
	}
	return nil
}
