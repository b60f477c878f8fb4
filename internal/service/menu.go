package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/yummyyard/internal/domain/models"
	"github.com/linemk/yummyyard/internal/storage"
)

// MenuService определяет операции чтения каталога
type MenuService interface {
	ListMenu(ctx context.Context) ([]*models.MenuItem, error)
	ListMenuByCategory(ctx context.Context, categoryID int64) ([]*models.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type menuService struct {
	log      *slog.Logger
	menuRepo storage.MenuStorage
}

func NewMenuService(log *slog.Logger, menuRepo storage.MenuStorage) MenuService {
	return &menuService{
		log:      log,
		menuRepo: menuRepo,
	}
}

func (s *menuService) ListMenu(ctx context.Context) ([]*models.MenuItem, error) {
	const op = "service.MenuService.ListMenu"
	items, err := s.menuRepo.ListMenuItems(ctx)
	if err != nil {
		s.log.Error("failed to list menu items", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *menuService) ListMenuByCategory(ctx context.Context, categoryID int64) ([]*models.MenuItem, error) {
	const op = "service.MenuService.ListMenuByCategory"
	items, err := s.menuRepo.ListMenuItemsByCategory(ctx, categoryID)
	if err != nil {
		s.log.Error("failed to list menu items by category", slog.String("op", op), slog.Int64("categoryID", categoryID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// GetMenuItem пробрасывает storage.ErrMenuItemNotFound наверх: обработчик
// отличает «не найдено» от сбоя запроса
func (s *menuService) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	const op = "service.MenuService.GetMenuItem"
	item, err := s.menuRepo.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMenuItemNotFound) {
			return nil, err
		}
		s.log.Error("failed to get menu item", slog.String("op", op), slog.Int64("id", id), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (s *menuService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.MenuService.ListCategories"
	categories, err := s.menuRepo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}
