package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/set-night/shoplab/internal/domain"
)

func (h *Handler) handleImportStage(w http.ResponseWriter, r *http.Request) {
	experimentID := r.PathValue("experimentId")
	stageID := r.PathValue("stageId")

	var stage domain.StageConfig
	if err := json.NewDecoder(r.Body).Decode(&stage); err != nil {
		writeError(w, fmt.Errorf("%w: decode stage config: %v", domain.ErrInvalidInput, err))
		return
	}
	if stage.ID == "" {
		stage.ID = stageID
	}
	if stage.ID != stageID {
		writeError(w, fmt.Errorf("%w: stage id %q does not match URL", domain.ErrInvalidInput, stage.ID))
		return
	}

	if err := h.shopping.ImportStage(r.Context(), experimentID, &stage); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stage)
}

func (h *Handler) handleGetStage(w http.ResponseWriter, r *http.Request) {
	stage, err := h.shopping.GetStage(r.Context(), r.PathValue("experimentId"), r.PathValue("stageId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stage)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decode request: %v", domain.ErrInvalidInput, err))
		return
	}
	if req.ParticipantID == "" || req.Message == "" {
		writeError(w, fmt.Errorf("%w: participantId and message are required", domain.ErrInvalidInput))
		return
	}

	message, recommendations, err := h.shopping.SendMessage(
		r.Context(),
		r.PathValue("experimentId"),
		req.ParticipantID,
		r.PathValue("stageId"),
		req.Message,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if recommendations == nil {
		recommendations = []domain.ProductRecommendation{}
	}
	writeJSON(w, http.StatusOK, sendMessageResponse{
		Message:                message,
		ProductRecommendations: recommendations,
	})
}

func (h *Handler) handleUpdateBasket(w http.ResponseWriter, r *http.Request) {
	var req updateBasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decode request: %v", domain.ErrInvalidInput, err))
		return
	}
	if req.ParticipantID == "" || req.ProductID == "" {
		writeError(w, fmt.Errorf("%w: participantId and productId are required", domain.ErrInvalidInput))
		return
	}

	basket, action, err := h.shopping.UpdateBasket(
		r.Context(),
		r.PathValue("experimentId"),
		req.ParticipantID,
		r.PathValue("stageId"),
		req.Action,
		req.ProductID,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateBasketResponse{Basket: basket, Action: action})
}

func (h *Handler) handleGetAnswer(w http.ResponseWriter, r *http.Request) {
	participantID := r.URL.Query().Get("participantId")
	if participantID == "" {
		writeError(w, fmt.Errorf("%w: participantId query parameter is required", domain.ErrInvalidInput))
		return
	}

	experimentID := r.PathValue("experimentId")
	stageID := r.PathValue("stageId")

	stage, err := h.shopping.GetStage(r.Context(), experimentID, stageID)
	if err != nil {
		writeError(w, err)
		return
	}
	answer, err := h.shopping.Answer(r.Context(), experimentID, participantID, stageID)
	if err != nil {
		writeError(w, err)
		return
	}

	total := domain.BasketTotal(answer.Basket, stage.ProductCatalog)

	list := make([]listItemStatus, 0, len(stage.ShoppingList))
	for _, item := range stage.ShoppingList {
		list = append(list, listItemStatus{
			ShoppingListItem: item,
			Fulfilled:        domain.IsListItemFulfilled(item, answer.Basket, stage.ProductCatalog),
		})
	}

	resp := answerResponse{
		Answer:               answer,
		BasketTotal:          total,
		BasketTotalFormatted: domain.FormatPrice(total),
		ShoppingList:         list,
	}
	if stage.TimeLimitInMinutes != nil {
		remaining := *stage.TimeLimitInMinutes * 60
		if answer.StartedAt != nil {
			elapsed := int(time.Since(*answer.StartedAt).Seconds())
			remaining -= elapsed
			if remaining < 0 {
				remaining = 0
			}
		}
		resp.RemainingSeconds = &remaining
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleMarkComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decode request: %v", domain.ErrInvalidInput, err))
		return
	}
	if req.ParticipantID == "" {
		writeError(w, fmt.Errorf("%w: participantId is required", domain.ErrInvalidInput))
		return
	}

	answer, err := h.shopping.MarkComplete(
		r.Context(),
		r.PathValue("experimentId"),
		req.ParticipantID,
		r.PathValue("stageId"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
