package handler

import (
	"github.com/set-night/shoplab/internal/domain"
)

type sendMessageRequest struct {
	ParticipantID string `json:"participantId"`
	Message       string `json:"message"`
}

type sendMessageResponse struct {
	Message                *domain.ShoppingChatMessage    `json:"message"`
	ProductRecommendations []domain.ProductRecommendation `json:"productRecommendations"`
}

type updateBasketRequest struct {
	ParticipantID string                  `json:"participantId"`
	Action        domain.BasketActionType `json:"action"`
	ProductID     string                  `json:"productId"`
}

type updateBasketResponse struct {
	Basket []domain.BasketItem  `json:"basket"`
	Action *domain.BasketAction `json:"action"`
}

type completeRequest struct {
	ParticipantID string `json:"participantId"`
}

// listItemStatus is a shopping-list entry with its fulfillment flag, derived
// at read time for rendering.
type listItemStatus struct {
	domain.ShoppingListItem
	Fulfilled bool `json:"fulfilled"`
}

type answerResponse struct {
	Answer               *domain.ParticipantAnswer `json:"answer"`
	BasketTotal          int                       `json:"basketTotal"`
	BasketTotalFormatted string                    `json:"basketTotalFormatted"`
	RemainingSeconds     *int                      `json:"remainingSeconds,omitempty"`
	ShoppingList         []listItemStatus          `json:"shoppingList"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}
