// Package cart реализует клиентскую корзину: чистые переходы состояния
// над набором позиций плюс зеркалирование снимка в долговременное хранилище
// через внедряемый порт Storage.
package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Item — снимок позиции меню в корзине
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"` // цена в минимальных единицах валюты
	ImageURL string `json:"image_url"`
	Quantity int    `json:"quantity"`
}

// CheckoutItem — позиция в формате запроса POST /api/orders
type CheckoutItem struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
	Price    int   `json:"price"`
}

// Storage — порт хранилища снимка корзины (в браузере это localStorage)
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Cart хранит набор позиций, ключом служит идентификатор позиции меню.
// Порядок добавления сохраняется
type Cart struct {
	log     *slog.Logger
	storage Storage
	items   []Item
}

// New восстанавливает корзину из хранилища. Повреждённый или отсутствующий
// снимок — это пустая корзина, а не ошибка
func New(log *slog.Logger, storage Storage) *Cart {
	c := &Cart{log: log, storage: storage}

	data, err := storage.Load()
	if err != nil || len(data) == 0 {
		if err != nil {
			log.Warn("failed to load cart snapshot, starting empty", slog.Any("error", err))
		}
		return c
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		log.Warn("failed to parse cart snapshot, starting empty", slog.Any("error", err))
		c.items = nil
	}
	return c
}

// Add добавляет позицию: если она уже в корзине — количество растёт на 1,
// иначе позиция появляется с количеством 1
func (c *Cart) Add(item Item) error {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return c.persist()
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	return c.persist()
}

// Decrement уменьшает количество на 1; позиция с количеством 1 удаляется целиком.
// Отсутствующая позиция — no-op
func (c *Cart) Decrement(itemID int64) error {
	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		if c.items[i].Quantity > 1 {
			c.items[i].Quantity--
		} else {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		return c.persist()
	}
	return nil
}

// Delete удаляет позицию независимо от количества
func (c *Cart) Delete(itemID int64) error {
	filtered := c.items[:0]
	for _, item := range c.items {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	c.items = filtered
	return c.persist()
}

// Clear опустошает корзину (после успешного оформления заказа)
func (c *Cart) Clear() error {
	c.items = nil
	return c.persist()
}

// Total — сумма цена×количество по всем позициям
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.items {
		total += item.Price * item.Quantity
	}
	return total
}

// Count — суммарное количество единиц (для значка на кнопке корзины)
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Items возвращает копию содержимого корзины
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// CheckoutItems возвращает позиции в формате тела запроса создания заказа
func (c *Cart) CheckoutItems() []CheckoutItem {
	items := make([]CheckoutItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, CheckoutItem{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return items
}

// persist зеркалирует текущее состояние в хранилище после каждого перехода
func (c *Cart) persist() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := c.storage.Save(data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
