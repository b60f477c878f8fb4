package models

// MenuItem представляет позицию меню, доступную для заказа
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // цена в минимальных единицах валюты
	CategoryID  int64  `json:"category_id"`
	IsPopular   bool   `json:"is_popular"`
	IsNew       bool   `json:"is_new"`
	ImageURL    string `json:"image_url"`
}

// Category группирует позиции меню
type Category struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}
