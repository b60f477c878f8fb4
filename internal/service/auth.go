package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/yummyyard/internal/domain/models"
	"github.com/linemk/yummyyard/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials возвращается и для неизвестного имени, и для неверного пароля,
// чтобы не раскрывать, какое именно поле не подошло
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type authService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage) AuthService {
	return &authService{
		log:      log,
		userRepo: userRepo,
	}
}

// Login ищет пользователя по имени и сверяет пароль с bcrypt-хэшем.
// При успехе обновляет отметку последнего входа и возвращает профиль;
// токен или сессия не выпускаются
func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(slog.String("op", op), slog.String("username", username))
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, ErrInvalidCredentials
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, ErrInvalidCredentials
	}

	if err := a.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Error("failed to update last login", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update last login: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return user, nil
}
