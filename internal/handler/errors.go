package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/set-night/shoplab/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses and wire
// codes. Unknown errors are logged and surfaced as a generic internal error.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid-argument", Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "not-found", Error: err.Error()})
	case errors.Is(err, domain.ErrTimeExpired):
		writeJSON(w, http.StatusConflict, errorResponse{Code: "failed-precondition", Error: err.Error()})
	case errors.Is(err, domain.ErrGenerationFailed):
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: "internal", Error: err.Error()})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal", Error: "internal error"})
	}
}
