package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/set-night/shoplab/internal/domain"
)

// MemoryStore is a non-durable in-process backend used in tests and local
// development. Documents are deep-copied through JSON on both reads and
// writes so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	stages  map[string][]byte
	answers map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stages:  make(map[string][]byte),
		answers: make(map[string][]byte),
	}
}

func (s *MemoryStore) GetStage(ctx context.Context, experimentID, stageID string) (*domain.StageConfig, error) {
	s.mu.RLock()
	raw, ok := s.stages[experimentID+"/"+stageID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	var stage domain.StageConfig
	if err := json.Unmarshal(raw, &stage); err != nil {
		return nil, err
	}
	return &stage, nil
}

func (s *MemoryStore) PutStage(ctx context.Context, experimentID string, stage *domain.StageConfig) error {
	raw, err := json.Marshal(stage)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.stages[experimentID+"/"+stage.ID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetAnswer(ctx context.Context, experimentID, participantID, stageID string) (*domain.ParticipantAnswer, error) {
	s.mu.RLock()
	raw, ok := s.answers[experimentID+"/"+participantID+"/"+stageID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	var answer domain.ParticipantAnswer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *MemoryStore) PutAnswer(ctx context.Context, experimentID, participantID, stageID string, answer *domain.ParticipantAnswer) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.answers[experimentID+"/"+participantID+"/"+stageID] = raw
	s.mu.Unlock()
	return nil
}
