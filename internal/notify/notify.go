package notify

import "context"

// OrderCreatedEvent — событие о созданном заказе для внешних потребителей (кухня, уведомления)
type OrderCreatedEvent struct {
	OrderID     int64  `json:"order_id"`
	UserID      int64  `json:"user_id"`
	TotalAmount int    `json:"total_amount"`
	Status      string `json:"status"`
}

// OrderNotifier публикует событие после успешного коммита заказа.
// Ошибка публикации не отменяет заказ — атомарность гарантируется только в БД
type OrderNotifier interface {
	OrderCreated(ctx context.Context, event OrderCreatedEvent) error
}

// Noop используется, когда брокер не настроен (amqp.enabled = false)
type Noop struct{}

func (Noop) OrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	return nil
}
