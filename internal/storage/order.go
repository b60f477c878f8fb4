package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/yummyyard/internal/domain/models"
)

// OrderStorage описывает методы для работы с заказами.
// Методы с параметром tx выполняются внутри транзакции оформления заказа
type OrderStorage interface {
	// CreateOrder вставляет строку заказа и возвращает её идентификатор.
	CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) (int64, error)
	// CreateOrderItem вставляет одну позицию заказа со снимком цены.
	CreateOrderItem(ctx context.Context, tx *sql.Tx, orderID, itemID int64, quantity, price int) error
	// GetOrdersByUserID возвращает заказы пользователя, новые первыми.
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	// GetOrderItemsByOrderID возвращает позиции заказа с JOIN для имени и картинки товара.
	GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]*models.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) (int64, error) {
	query := `INSERT INTO orders (user_id, total_amount, delivery_address, contact_number, payment_method, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, query,
		order.UserID, order.TotalAmount, order.DeliveryAddress, order.ContactNumber, order.PaymentMethod, models.OrderStatusPending,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, tx *sql.Tx, orderID, itemID int64, quantity, price int) error {
	query := `INSERT INTO order_items (order_id, item_id, quantity, price) VALUES ($1, $2, $3, $4)`
	_, err := tx.ExecContext(ctx, query, orderID, itemID, quantity, price)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, total_amount, delivery_address, contact_number, payment_method, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.DeliveryAddress, &order.ContactNumber, &order.PaymentMethod, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.price, mi.name, mi.image_url
		FROM order_items oi
		JOIN menu_items mi ON oi.item_id = mi.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemID, &item.Quantity, &item.Price, &item.Name, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
