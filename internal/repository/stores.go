// Package repository persists stage configs and participant answer
// documents. Answers are whole documents written with last-write-wins
// semantics; no partial updates exist.
package repository

import (
	"context"

	"github.com/set-night/shoplab/internal/domain"
)

// StageStore reads and writes authored stage configurations.
type StageStore interface {
	// GetStage returns the stage config, or domain.ErrNotFound.
	GetStage(ctx context.Context, experimentID, stageID string) (*domain.StageConfig, error)
	// PutStage stores the whole config, overwriting any previous version.
	PutStage(ctx context.Context, experimentID string, stage *domain.StageConfig) error
}

// AnswerStore reads and writes participant answer documents keyed by
// (experiment, participant, stage).
type AnswerStore interface {
	// GetAnswer returns the stored answer, or domain.ErrNotFound if the
	// participant has not interacted with the stage yet.
	GetAnswer(ctx context.Context, experimentID, participantID, stageID string) (*domain.ParticipantAnswer, error)
	// PutAnswer overwrites the whole document.
	PutAnswer(ctx context.Context, experimentID, participantID, stageID string, answer *domain.ParticipantAnswer) error
}

// Store combines both stores; every backend implements it.
type Store interface {
	StageStore
	AnswerStore
}
