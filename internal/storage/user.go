package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linemk/yummyyard/internal/domain/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserStorage interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

// GetUserByUsername возвращает пользователя по имени (используется при входе)
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, phone, address, pass_hash, created_at, last_login FROM users WHERE username = $1",
		username)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.Address, &user.PassHash, &user.CreatedAt, &user.LastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail возвращает пользователя по email (используется при проверке уникальности)
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, phone, address, pass_hash, created_at, last_login FROM users WHERE email = $1",
		email)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.Address, &user.PassHash, &user.CreatedAt, &user.LastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, phone, address, pass_hash) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		user.Username, user.Email, user.Phone, user.Address, user.PassHash,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// UpdateLastLogin проставляет отметку времени последнего входа
func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET last_login = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
