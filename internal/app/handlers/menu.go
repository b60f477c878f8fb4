package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/yummyyard/internal/domain/models"
	"github.com/linemk/yummyyard/internal/service"
	"github.com/linemk/yummyyard/internal/storage"
)

// MenuHandler обрабатывает запрос GET /api/menu
func MenuHandler(log *slog.Logger, menuService service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MenuHandler"
		logger := log.With(slog.String("op", op))

		items, err := menuService.ListMenu(r.Context())
		if err != nil {
			logger.Error("failed to fetch menu items", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Failed to fetch menu items")
			return
		}
		if items == nil {
			items = []*models.MenuItem{}
		}

		respondJSON(logger, w, http.StatusOK, items)
	}
}

// MenuByCategoryHandler обрабатывает запрос GET /api/menu/category/{categoryId}
func MenuByCategoryHandler(log *slog.Logger, menuService service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MenuByCategoryHandler"
		logger := log.With(slog.String("op", op))

		categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryId"), 10, 64)
		if err != nil {
			logger.Error("invalid category id", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "invalid category id")
			return
		}

		items, err := menuService.ListMenuByCategory(r.Context(), categoryID)
		if err != nil {
			logger.Error("failed to fetch menu items for category", slog.Int64("categoryID", categoryID), slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Failed to fetch menu items for category")
			return
		}
		if items == nil {
			items = []*models.MenuItem{}
		}

		respondJSON(logger, w, http.StatusOK, items)
	}
}

// MenuItemHandler обрабатывает запрос GET /api/menu/item/{id}.
// Отсутствующая позиция — это 404, а не сбой сервера
func MenuItemHandler(log *slog.Logger, menuService service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MenuItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			logger.Error("invalid item id", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "invalid item id")
			return
		}

		item, err := menuService.GetMenuItem(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrMenuItemNotFound) {
				respondError(logger, w, http.StatusNotFound, "Menu item not found")
				return
			}
			logger.Error("failed to fetch menu item", slog.Int64("id", id), slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Failed to fetch menu item")
			return
		}

		respondJSON(logger, w, http.StatusOK, item)
	}
}

// CategoriesHandler обрабатывает запрос GET /api/categories
func CategoriesHandler(log *slog.Logger, menuService service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := menuService.ListCategories(r.Context())
		if err != nil {
			logger.Error("failed to fetch categories", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		if categories == nil {
			categories = []*models.Category{}
		}

		respondJSON(logger, w, http.StatusOK, categories)
	}
}
