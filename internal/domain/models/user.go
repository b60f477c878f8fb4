package models

import "time"

// User представляет зарегистрированного пользователя
type User struct {
	ID        int64
	Username  string
	Email     string
	Phone     string
	Address   string
	PassHash  []byte
	CreatedAt time.Time
	LastLogin *time.Time // nil, пока пользователь ни разу не входил
}
