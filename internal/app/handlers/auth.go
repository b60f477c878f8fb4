package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/yummyyard/internal/service"
)

// RegisterRequest представляет структуру запроса регистрации с тегами валидации
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse — ответ при успешной регистрации
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginRequest представляет структуру запроса входа
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse — ответ при успешном входе: минимальный профиль, без токена
type LoginResponse struct {
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
}

type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterHandler обрабатывает запрос POST /api/register
func RegisterHandler(log *slog.Logger, registerService service.RegisterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "invalid request")
			return
		}

		// Валидация обязательных полей до любой работы с БД
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "All fields are required")
			return
		}

		userID, err := registerService.Register(r.Context(), req.Username, req.Email, req.Phone, req.Address, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				respondError(logger, w, http.StatusConflict, "Email already in use")
			case errors.Is(err, service.ErrUsernameTaken):
				respondError(logger, w, http.StatusConflict, "Username already taken")
			default:
				logger.Error("registration failed", slog.Any("error", err))
				respondError(logger, w, http.StatusInternalServerError, "Registration failed. Please try again.")
			}
			return
		}

		respondJSON(logger, w, http.StatusCreated, RegisterResponse{
			Message: "User registered successfully",
			UserID:  userID,
		})
	}
}

// LoginHandler обрабатывает запрос POST /api/login.
// Неизвестное имя и неверный пароль дают одинаковый ответ 401
func LoginHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "invalid request")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "Username and password are required")
			return
		}

		user, err := authService.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				respondError(logger, w, http.StatusUnauthorized, "Invalid username or password")
				return
			}
			logger.Error("login failed", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Login failed. Please try again.")
			return
		}

		respondJSON(logger, w, http.StatusOK, LoginResponse{
			Message: "Login successful",
			User: UserProfile{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			},
		})
	}
}
