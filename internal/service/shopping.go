// Package service implements the shopping task operations: the chat turn
// against the configured assistant, basket mutations, and stage lifecycle.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/set-night/shoplab/internal/assistant"
	"github.com/set-night/shoplab/internal/config"
	"github.com/set-night/shoplab/internal/domain"
	"github.com/set-night/shoplab/internal/generator"
	"github.com/set-night/shoplab/internal/repository"
)

type ShoppingService struct {
	stages  repository.StageStore
	answers repository.AnswerStore
	gen     generator.Generator

	// Turns and basket updates for the same participant+stage run one at a
	// time; the answer document is read-modify-written as a whole, and
	// without this a double-click could lose an update.
	turns *keyedMutex
}

func NewShoppingService(store repository.Store, gen generator.Generator) *ShoppingService {
	return &ShoppingService{
		stages:  store,
		answers: store,
		gen:     gen,
		turns:   newKeyedMutex(),
	}
}

// ImportStage validates and stores a stage config. Missing stage and
// shopping-list item ids are filled in before validation.
func (s *ShoppingService) ImportStage(ctx context.Context, experimentID string, stage *domain.StageConfig) error {
	if experimentID == "" {
		return fmt.Errorf("%w: experiment id must not be empty", domain.ErrInvalidInput)
	}
	if stage.ID == "" {
		stage.ID = uuid.New().String()
	}
	if stage.Kind == "" {
		stage.Kind = domain.StageKindAssistantShopping
	}
	for i := range stage.ShoppingList {
		if stage.ShoppingList[i].ID == "" {
			stage.ShoppingList[i].ID = uuid.New().String()
		}
	}

	if err := stage.Validate(); err != nil {
		return err
	}

	if err := s.stages.PutStage(ctx, experimentID, stage); err != nil {
		return fmt.Errorf("save stage: %w", err)
	}
	return nil
}

// GetStage returns the stage config for rendering.
func (s *ShoppingService) GetStage(ctx context.Context, experimentID, stageID string) (*domain.StageConfig, error) {
	stage, err := s.stages.GetStage(ctx, experimentID, stageID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, fmt.Errorf("%w: stage %s", domain.ErrNotFound, stageID)
		}
		return nil, err
	}
	if stage.Kind != domain.StageKindAssistantShopping {
		return nil, fmt.Errorf("%w: stage %s is not a shopping stage", domain.ErrNotFound, stageID)
	}
	return stage, nil
}

// SendMessage runs one chat turn: append the user message, invoke the
// generator, parse the reply into recommendations, append the assistant
// message, and persist the whole answer document.
//
// If the generator returns no usable text, nothing is persisted — the user
// message is lost from server state and the caller retries with the same
// text.
func (s *ShoppingService) SendMessage(ctx context.Context, experimentID, participantID, stageID, message string) (*domain.ShoppingChatMessage, []domain.ProductRecommendation, error) {
	stage, err := s.GetStage(ctx, experimentID, stageID)
	if err != nil {
		return nil, nil, err
	}

	lock := s.turns.lock(turnKey(experimentID, participantID, stageID))
	defer lock.Unlock()

	answer, err := s.getOrCreateAnswer(ctx, experimentID, participantID, stageID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if timeExpired(stage, answer, now) {
		return nil, nil, domain.ErrTimeExpired
	}

	// First message starts the time-limit clock.
	if answer.StartedAt == nil {
		t := now
		answer.StartedAt = &t
	}

	userMessage := domain.ShoppingChatMessage{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Content:   message,
		Timestamp: now,
	}
	answer.ChatHistory = append(answer.ChatHistory, userMessage)

	messages := make([]generator.Message, 0, len(answer.ChatHistory)+1)
	messages = append(messages, generator.Message{
		Role:    "system",
		Content: assistant.BuildSystemPrompt(stage),
	})
	for _, m := range answer.ChatHistory {
		messages = append(messages, generator.Message{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	reply, err := s.gen.Generate(ctx, messages,
		generator.ModelSettings{
			APIType:   stage.AssistantConfig.APIType,
			ModelName: stage.AssistantConfig.ModelName,
		},
		generator.GenerationConfig{
			Temperature: stage.AssistantConfig.Temperature,
			MaxTokens:   config.MaxTokens,
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, nil, fmt.Errorf("%w: model returned empty text", domain.ErrGenerationFailed)
	}

	recommendations, cleanedText := assistant.ParseRecommendations(reply, stage.ProductCatalog)

	assistantMessage := domain.ShoppingChatMessage{
		ID:                     uuid.New().String(),
		Role:                   domain.RoleAssistant,
		Content:                cleanedText,
		Timestamp:              time.Now().UTC(),
		ProductRecommendations: recommendations,
	}
	answer.ChatHistory = append(answer.ChatHistory, assistantMessage)

	if err := s.answers.PutAnswer(ctx, experimentID, participantID, stageID, answer); err != nil {
		return nil, nil, fmt.Errorf("save answer: %w", err)
	}

	return &assistantMessage, recommendations, nil
}

// UpdateBasket applies one add or remove request. The basket stays a set
// keyed by product id, while the action history records every accepted
// request — adding an already-present product appends to history without
// duplicating the basket entry, and removing an absent product is a no-op
// on the basket but still logged.
func (s *ShoppingService) UpdateBasket(ctx context.Context, experimentID, participantID, stageID string, action domain.BasketActionType, productID string) ([]domain.BasketItem, *domain.BasketAction, error) {
	if !action.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown basket action %q", domain.ErrInvalidInput, action)
	}

	stage, err := s.GetStage(ctx, experimentID, stageID)
	if err != nil {
		return nil, nil, err
	}
	if !stage.HasProduct(productID) {
		return nil, nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, productID)
	}

	lock := s.turns.lock(turnKey(experimentID, participantID, stageID))
	defer lock.Unlock()

	answer, err := s.getOrCreateAnswer(ctx, experimentID, participantID, stageID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if timeExpired(stage, answer, now) {
		return nil, nil, domain.ErrTimeExpired
	}

	basketAction := domain.BasketAction{
		Type:      action,
		ProductID: productID,
		Timestamp: now,
	}

	switch action {
	case domain.BasketActionAdd:
		if !domain.IsProductInBasket(productID, answer.Basket) {
			answer.Basket = append(answer.Basket, domain.BasketItem{
				ProductID: productID,
				AddedAt:   now,
			})
		}
	case domain.BasketActionRemove:
		kept := answer.Basket[:0]
		for _, item := range answer.Basket {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		answer.Basket = kept
	}
	answer.BasketHistory = append(answer.BasketHistory, basketAction)

	if err := s.answers.PutAnswer(ctx, experimentID, participantID, stageID, answer); err != nil {
		return nil, nil, fmt.Errorf("save answer: %w", err)
	}

	return answer.Basket, &basketAction, nil
}

// Answer returns the participant's current state, or the default empty
// answer if none is stored yet. Reads never create the document.
func (s *ShoppingService) Answer(ctx context.Context, experimentID, participantID, stageID string) (*domain.ParticipantAnswer, error) {
	if _, err := s.GetStage(ctx, experimentID, stageID); err != nil {
		return nil, err
	}
	return s.getOrCreateAnswer(ctx, experimentID, participantID, stageID)
}

// MarkComplete stamps completedAt once. Calling it again returns the stored
// answer unchanged.
func (s *ShoppingService) MarkComplete(ctx context.Context, experimentID, participantID, stageID string) (*domain.ParticipantAnswer, error) {
	if _, err := s.GetStage(ctx, experimentID, stageID); err != nil {
		return nil, err
	}

	lock := s.turns.lock(turnKey(experimentID, participantID, stageID))
	defer lock.Unlock()

	answer, err := s.getOrCreateAnswer(ctx, experimentID, participantID, stageID)
	if err != nil {
		return nil, err
	}
	if answer.CompletedAt != nil {
		return answer, nil
	}

	now := time.Now().UTC()
	answer.CompletedAt = &now
	if err := s.answers.PutAnswer(ctx, experimentID, participantID, stageID, answer); err != nil {
		return nil, fmt.Errorf("save answer: %w", err)
	}
	return answer, nil
}

func (s *ShoppingService) getOrCreateAnswer(ctx context.Context, experimentID, participantID, stageID string) (*domain.ParticipantAnswer, error) {
	answer, err := s.answers.GetAnswer(ctx, experimentID, participantID, stageID)
	if err != nil {
		if err == domain.ErrNotFound {
			return domain.NewParticipantAnswer(stageID), nil
		}
		return nil, fmt.Errorf("load answer: %w", err)
	}
	return answer, nil
}

// timeExpired reports whether the stage's wall-clock limit has elapsed.
// The clock starts at the first chat message; before that nothing expires.
func timeExpired(stage *domain.StageConfig, answer *domain.ParticipantAnswer, now time.Time) bool {
	if stage.TimeLimitInMinutes == nil || answer.StartedAt == nil {
		return false
	}
	deadline := answer.StartedAt.Add(time.Duration(*stage.TimeLimitInMinutes) * time.Minute)
	return now.After(deadline)
}

func turnKey(experimentID, participantID, stageID string) string {
	return experimentID + "/" + participantID + "/" + stageID
}
