// Package handler exposes the shopping task over a JSON HTTP API.
package handler

import (
	"net/http"

	"github.com/set-night/shoplab/internal/config"
	"github.com/set-night/shoplab/internal/service"
)

// Handler holds all dependencies needed by the HTTP endpoints.
type Handler struct {
	cfg      *config.Config
	shopping *service.ShoppingService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg      *config.Config
	Shopping *service.ShoppingService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:      deps.Cfg,
		shopping: deps.Shopping,
	}
}

// Register attaches all routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("PUT /api/experiments/{experimentId}/stages/{stageId}", h.handleImportStage)
	mux.HandleFunc("GET /api/experiments/{experimentId}/stages/{stageId}", h.handleGetStage)
	mux.HandleFunc("POST /api/experiments/{experimentId}/stages/{stageId}/message", h.handleSendMessage)
	mux.HandleFunc("POST /api/experiments/{experimentId}/stages/{stageId}/basket", h.handleUpdateBasket)
	mux.HandleFunc("GET /api/experiments/{experimentId}/stages/{stageId}/answer", h.handleGetAnswer)
	mux.HandleFunc("POST /api/experiments/{experimentId}/stages/{stageId}/complete", h.handleMarkComplete)
}
