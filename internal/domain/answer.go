package domain

import "time"

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// BasketActionType is the kind of basket mutation requested.
type BasketActionType string

const (
	BasketActionAdd    BasketActionType = "add"
	BasketActionRemove BasketActionType = "remove"
)

// Valid reports whether the action is add or remove.
func (t BasketActionType) Valid() bool {
	return t == BasketActionAdd || t == BasketActionRemove
}

// BasketItem is one product in the basket. The basket is a set keyed by
// ProductID; a product appears at most once.
type BasketItem struct {
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

// BasketAction is one entry in the append-only basket audit log. It records
// the request, not the resulting state: adding a product that is already in
// the basket still appends an action.
type BasketAction struct {
	Type      BasketActionType `json:"type"`
	ProductID string           `json:"productId"`
	Timestamp time.Time        `json:"timestamp"`
}

// ProductRecommendation is a structured recommendation parsed from the
// assistant reply. ProductID always references an existing catalog product.
type ProductRecommendation struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

// ShoppingChatMessage is one turn of the shopping conversation. Content has
// recommendation tags already stripped. History is append-only.
type ShoppingChatMessage struct {
	ID                     string                  `json:"id"`
	Role                   ChatRole                `json:"role"`
	Content                string                  `json:"content"`
	Timestamp              time.Time               `json:"timestamp"`
	ProductRecommendations []ProductRecommendation `json:"productRecommendations,omitempty"`
}

// ParticipantAnswer is the whole per-participant stage state. It is
// persisted as a single document on every mutation.
type ParticipantAnswer struct {
	StageID       string                `json:"stageId"`
	Basket        []BasketItem          `json:"basket"`
	BasketHistory []BasketAction        `json:"basketHistory"`
	ChatHistory   []ShoppingChatMessage `json:"chatHistory"`
	StartedAt     *time.Time            `json:"startedAt"`
	CompletedAt   *time.Time            `json:"completedAt"`
}

// NewParticipantAnswer creates the default answer used on first interaction.
func NewParticipantAnswer(stageID string) *ParticipantAnswer {
	return &ParticipantAnswer{
		StageID:       stageID,
		Basket:        []BasketItem{},
		BasketHistory: []BasketAction{},
		ChatHistory:   []ShoppingChatMessage{},
	}
}
