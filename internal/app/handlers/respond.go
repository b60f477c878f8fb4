package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// errorResponse — единый формат ошибки для клиента
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(log *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(log *slog.Logger, w http.ResponseWriter, status int, msg string) {
	respondJSON(log, w, status, errorResponse{Error: msg})
}
