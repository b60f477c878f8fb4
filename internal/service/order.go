package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/yummyyard/internal/domain/models"
	"github.com/linemk/yummyyard/internal/notify"
	"github.com/linemk/yummyyard/internal/storage"
)

// ErrEmptyOrder — заказ без позиций не доходит до БД
var ErrEmptyOrder = errors.New("order must contain at least one item")

// OrderItemInput — позиция заказа, пришедшая от клиента: идентификатор,
// количество и цена-снимок на момент оформления
type OrderItemInput struct {
	ItemID   int64
	Quantity int
	Price    int
}

type OrderService interface {
	// PlaceOrder атомарно создаёт заказ и все его позиции, возвращает id нового заказа.
	PlaceOrder(ctx context.Context, order *models.Order, items []OrderItemInput) (int64, error)
	// GetUserOrders возвращает заказы пользователя с вложенными позициями.
	GetUserOrders(ctx context.Context, userID int64) ([]*models.Order, error)
}

type orderService struct {
	log       *slog.Logger
	db        *sql.DB
	orderRepo storage.OrderStorage
	notifier  notify.OrderNotifier
}

func NewOrderService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, notifier notify.OrderNotifier) OrderService {
	return &orderService{
		log:       log,
		db:        db,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// PlaceOrder выполняет транзакцию оформления заказа: строка заказа со статусом
// "pending" плюс строка на каждую позицию. Любая ошибка после BeginTx откатывает
// всё целиком — частично видимого заказа не остаётся.
// Событие для брокера публикуется уже после коммита и заказ не отменяет
func (s *orderService) PlaceOrder(ctx context.Context, order *models.Order, items []OrderItemInput) (int64, error) {
	const op = "service.OrderService.PlaceOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", order.UserID))

	if len(items) == 0 {
		return 0, ErrEmptyOrder
	}

	logger.Info("starting order transaction", slog.Int("items", len(items)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	orderID, err := s.orderRepo.CreateOrder(ctx, tx, order)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	for _, item := range items {
		if err := s.orderRepo.CreateOrderItem(ctx, tx, orderID, item.ItemID, item.Quantity, item.Price); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to create order item", slog.Int64("itemID", item.ItemID), slog.Any("error", err))
			return 0, fmt.Errorf("%s: failed to create order item: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	event := notify.OrderCreatedEvent{
		OrderID:     orderID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      models.OrderStatusPending,
	}
	if err := s.notifier.OrderCreated(ctx, event); err != nil {
		logger.Warn("failed to publish order event", slog.Any("error", err))
	}

	logger.Info("order created successfully", slog.Int64("orderID", orderID))
	return orderID, nil
}

// GetUserOrders возвращает заказы пользователя, новые первыми,
// и подтягивает позиции каждого заказа отдельным запросом
func (s *orderService) GetUserOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.GetUserOrders"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to get orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get orders: %w", op, err)
	}

	for _, order := range orders {
		items, err := s.orderRepo.GetOrderItemsByOrderID(ctx, order.ID)
		if err != nil {
			logger.Error("failed to get order items", slog.Int64("orderID", order.ID), slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to get order items: %w", op, err)
		}
		if items == nil {
			items = []*models.OrderItem{} // пустой массив в JSON вместо null
		}
		order.Items = items
	}

	return orders, nil
}
