package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/yummyyard/internal/domain/models"
	"github.com/linemk/yummyyard/internal/service"
)

// OrderItemPayload — позиция заказа во входном JSON; price — снимок цены на клиенте
type OrderItemPayload struct {
	ID       int64 `json:"id" validate:"required"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
	Price    int   `json:"price" validate:"required,gt=0"`
}

// CreateOrderRequest представляет входной JSON для оформления заказа
type CreateOrderRequest struct {
	UserID          int64              `json:"user_id" validate:"required"`
	Items           []OrderItemPayload `json:"items" validate:"required,min=1,dive"`
	TotalAmount     int                `json:"total_amount" validate:"required,gt=0"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	ContactNumber   string             `json:"contact_number" validate:"required"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
}

// CreateOrderResponse — ответ при успешном оформлении
type CreateOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// CreateOrderHandler обрабатывает запрос POST /api/orders.
// Валидация выполняется до начала транзакции; ошибка валидации — это 400,
// сбой персистентности — 500 с уже откатившейся транзакцией
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "invalid request")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "All fields are required")
			return
		}

		order := &models.Order{
			UserID:          req.UserID,
			TotalAmount:     req.TotalAmount,
			DeliveryAddress: req.DeliveryAddress,
			ContactNumber:   req.ContactNumber,
			PaymentMethod:   req.PaymentMethod,
		}
		items := make([]service.OrderItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, service.OrderItemInput{
				ItemID:   item.ID,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}

		orderID, err := orderService.PlaceOrder(r.Context(), order, items)
		if err != nil {
			if errors.Is(err, service.ErrEmptyOrder) {
				respondError(logger, w, http.StatusBadRequest, "All fields are required")
				return
			}
			logger.Error("failed to create order", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Failed to create order. Please try again.")
			return
		}

		respondJSON(logger, w, http.StatusCreated, CreateOrderResponse{
			Message: "Order created successfully",
			OrderID: orderID,
		})
	}
}

// UserOrdersHandler обрабатывает запрос GET /api/orders/user/{userId}
func UserOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UserOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil {
			logger.Error("invalid user id", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "invalid user id")
			return
		}

		orders, err := orderService.GetUserOrders(r.Context(), userID)
		if err != nil {
			logger.Error("failed to fetch orders", slog.Int64("userID", userID), slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}

		respondJSON(logger, w, http.StatusOK, orders)
	}
}
