package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/yummyyard/internal/domain/models"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuStorage описывает методы чтения каталога; меню через API не изменяется
type MenuStorage interface {
	ListMenuItems(ctx context.Context) ([]*models.MenuItem, error)
	ListMenuItemsByCategory(ctx context.Context, categoryID int64) ([]*models.MenuItem, error)
	GetMenuItemByID(ctx context.Context, id int64) (*models.MenuItem, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type menuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) MenuStorage {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category_id, is_popular, is_new, image_url
		FROM menu_items
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

func (r *menuRepository) ListMenuItemsByCategory(ctx context.Context, categoryID int64) ([]*models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category_id, is_popular, is_new, image_url
		FROM menu_items
		WHERE category_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

// GetMenuItemByID возвращает одну позицию; отсутствие — отдельная ошибка, не сбой запроса
func (r *menuRepository) GetMenuItemByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := "SELECT id, name, description, price, category_id, is_popular, is_new, image_url FROM menu_items WHERE id = $1"
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID, &item.IsPopular, &item.IsNew, &item.ImageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *menuRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := "SELECT DISTINCT category_id, name FROM categories ORDER BY category_id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.CategoryID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func scanMenuItems(rows *sql.Rows) ([]*models.MenuItem, error) {
	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID, &item.IsPopular, &item.IsNew, &item.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
