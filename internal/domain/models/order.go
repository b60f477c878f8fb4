package models

import "time"

// Статус заказа при создании; другого статуса в этой системе нет
const OrderStatusPending = "pending"

// Order представляет заказ, созданный при оформлении корзины
type Order struct {
	ID              int64        `json:"id"`
	UserID          int64        `json:"user_id"`
	TotalAmount     int          `json:"total_amount"`
	DeliveryAddress string       `json:"delivery_address"`
	ContactNumber   string       `json:"contact_number"`
	PaymentMethod   string       `json:"payment_method"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	Items           []*OrderItem `json:"items"`
}

// OrderItem представляет позицию заказа.
// Price — снимок цены на момент покупки, не привязан к текущей цене меню
type OrderItem struct {
	ID       int64  `json:"id"`
	OrderID  int64  `json:"order_id"`
	ItemID   int64  `json:"item_id"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
	Name     string `json:"name"`      // имя позиции; заполняется через JOIN с menu_items
	ImageURL string `json:"image_url"` // заполняется через JOIN с menu_items
}
