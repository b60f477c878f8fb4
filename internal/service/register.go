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

// bcryptCost — фиксированный параметр стоимости хэширования пароля
const bcryptCost = 10

var (
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already taken")
)

type RegisterService interface {
	Register(ctx context.Context, username, email, phone, address, password string) (int64, error)
}

type registerService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewRegisterService(log *slog.Logger, userRepo storage.UserStorage) RegisterService {
	return &registerService{
		log:      log,
		userRepo: userRepo,
	}
}

// Register проверяет уникальность email и имени пользователя двумя отдельными запросами,
// хэширует пароль и создаёт пользователя. Гонку между конкурентными регистрациями
// закрывают UNIQUE-ограничения в схеме: проигравший insert вернёт ошибку БД
func (s *registerService) Register(ctx context.Context, username, email, phone, address, password string) (int64, error) {
	const op = "service.RegisterService.Register"
	logger := s.log.With(slog.String("op", op), slog.String("username", username))
	logger.Info("registering user")

	// Сначала проверяем email
	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		logger.Warn("email already in use")
		return 0, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		logger.Error("failed to check email", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to check email: %w", op, err)
	}

	// Затем имя пользователя
	if _, err := s.userRepo.GetUserByUsername(ctx, username); err == nil {
		logger.Warn("username already taken")
		return 0, ErrUsernameTaken
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		logger.Error("failed to check username", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to check username: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Phone:    phone,
		Address:  address,
		PassHash: passHash,
	}
	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered successfully", slog.Int64("userID", created.ID))
	return created.ID, nil
}
