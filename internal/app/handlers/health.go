package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
)

// HealthResponse — ответ проверки доступности БД
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler обрабатывает запрос GET /api/health: пингует базу и отвечает статусом
func HealthHandler(log *slog.Logger, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.HealthHandler"
		logger := log.With(slog.String("op", op))

		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("database ping failed", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Database connection failed")
			return
		}

		respondJSON(logger, w, http.StatusOK, HealthResponse{Status: "Database connection successful"})
	}
}
