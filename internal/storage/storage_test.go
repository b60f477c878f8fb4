package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/yummyyard/internal/domain/models"
	"github.com/linemk/yummyyard/internal/storage"
	"github.com/stretchr/testify/assert"
)

const userColumnsQuery = "SELECT id, username, email, phone, address, pass_hash, created_at, last_login FROM users WHERE username = $1"

func TestGetUserByUsername_Success(t *testing.T) {
	// Создаем sqlmock для эмуляции базы данных.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	// Подготавливаем ожидаемые строки результата.
	rows := sqlmock.NewRows([]string{"id", "username", "email", "phone", "address", "pass_hash", "created_at", "last_login"}).
		AddRow(1, "testuser", "test@example.com", "+70001112233", "Lenina 1", []byte("hashed-password"), now, nil)

	mock.ExpectQuery(regexp.QuoteMeta(userColumnsQuery)).
		WithArgs("testuser").WillReturnRows(rows)

	user, err := repo.GetUserByUsername(ctx, "testuser")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, []byte("hashed-password"), user.PassHash)
	assert.Nil(t, user.LastLogin, "LastLogin should be nil before first login")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	// Эмулируем ситуацию, когда запрос возвращает 0 строк.
	rows := sqlmock.NewRows([]string{"id", "username", "email", "phone", "address", "pass_hash", "created_at", "last_login"})
	mock.ExpectQuery(regexp.QuoteMeta(userColumnsQuery)).
		WithArgs("ghost").WillReturnRows(rows)

	user, err := repo.GetUserByUsername(ctx, "ghost")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsername_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	// Эмулируем ошибку выполнения запроса.
	mock.ExpectQuery(regexp.QuoteMeta(userColumnsQuery)).
		WithArgs("testuser").WillReturnError(errors.New("db error"))

	user, err := repo.GetUserByUsername(ctx, "testuser")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrUserNotFound))
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	email := "test@example.com"
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "phone", "address", "pass_hash", "created_at", "last_login"}).
		AddRow(1, "testuser", email, "+70001112233", "Lenina 1", []byte("hashed-password"), now, now)

	query := regexp.QuoteMeta("SELECT id, username, email, phone, address, pass_hash, created_at, last_login FROM users WHERE email = $1")
	mock.ExpectQuery(query).WithArgs(email).WillReturnRows(rows)

	user, err := repo.GetUserByEmail(ctx, email)
	assert.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.NotNil(t, user.LastLogin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "phone", "address", "pass_hash", "created_at", "last_login"})
	query := regexp.QuoteMeta("SELECT id, username, email, phone, address, pass_hash, created_at, last_login FROM users WHERE email = $1")
	mock.ExpectQuery(query).WithArgs("nobody@example.com").WillReturnRows(rows)

	user, err := repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("INSERT INTO users (username, email, phone, address, pass_hash) VALUES ($1, $2, $3, $4, $5) RETURNING id")
	mock.ExpectQuery(query).
		WithArgs("newuser", "new@example.com", "+70001112233", "Lenina 1", []byte("hashed")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user := &models.User{
		Username: "newuser",
		Email:    "new@example.com",
		Phone:    "+70001112233",
		Address:  "Lenina 1",
		PassHash: []byte("hashed"),
	}
	created, err := repo.CreateUser(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLastLogin_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("UPDATE users SET last_login = NOW() WHERE id = $1")
	mock.ExpectExec(query).WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateLastLogin(ctx, 1)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLastLogin_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("UPDATE users SET last_login = NOW() WHERE id = $1")
	mock.ExpectExec(query).WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // 0 строк затронуто

	err = repo.UpdateLastLogin(ctx, 99)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrUserNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func menuItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "category_id", "is_popular", "is_new", "image_url"})
}

func TestListMenuItems_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMenuRepository(db)
	ctx := context.Background()

	rows := menuItemRows().
		AddRow(1, "Garlic Bread", "Toasted baguette", 299, 1, true, false, "/images/garlic-bread.jpg").
		AddRow(2, "Margherita Pizza", "Classic pizza", 899, 2, true, false, "/images/margherita.jpg")

	query := regexp.QuoteMeta(`
		SELECT id, name, description, price, category_id, is_popular, is_new, image_url
		FROM menu_items
		ORDER BY id`)
	mock.ExpectQuery(query).WillReturnRows(rows)

	items, err := repo.ListMenuItems(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Garlic Bread", items[0].Name)
	assert.Equal(t, 299, items[0].Price)
	assert.True(t, items[0].IsPopular)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMenuItems_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMenuRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`
		SELECT id, name, description, price, category_id, is_popular, is_new, image_url
		FROM menu_items
		ORDER BY id`)
	mock.ExpectQuery(query).WillReturnError(errors.New("query error"))

	items, err := repo.ListMenuItems(ctx)
	assert.Error(t, err)
	assert.Nil(t, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMenuItemsByCategory_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMenuRepository(db)
	ctx := context.Background()

	rows := menuItemRows().
		AddRow(3, "Chocolate Lava Cake", "Warm cake", 499, 3, true, false, "/images/lava-cake.jpg")

	query := regexp.QuoteMeta(`
		SELECT id, name, description, price, category_id, is_popular, is_new, image_url
		FROM menu_items
		WHERE category_id = $1
		ORDER BY id`)
	mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnRows(rows)

	items, err := repo.ListMenuItemsByCategory(ctx, 3)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].CategoryID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMenuItemByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMenuRepository(db)
	ctx := context.Background()

	rows := menuItemRows().
		AddRow(1, "Garlic Bread", "Toasted baguette", 299, 1, true, false, "/images/garlic-bread.jpg")

	query := regexp.QuoteMeta("SELECT id, name, description, price, category_id, is_popular, is_new, image_url FROM menu_items WHERE id = $1")
	mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(rows)

	item, err := repo.GetMenuItemByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "Garlic Bread", item.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMenuItemByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMenuRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("SELECT id, name, description, price, category_id, is_popular, is_new, image_url FROM menu_items WHERE id = $1")
	mock.ExpectQuery(query).WithArgs(int64(42)).WillReturnRows(menuItemRows())

	item, err := repo.GetMenuItemByID(ctx, 42)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrMenuItemNotFound))
	assert.Nil(t, item)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMenuItemByID_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMenuRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("SELECT id, name, description, price, category_id, is_popular, is_new, image_url FROM menu_items WHERE id = $1")
	expectedErr := errors.New("query error")
	mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(expectedErr)

	item, err := repo.GetMenuItemByID(ctx, 1)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrMenuItemNotFound))
	assert.Nil(t, item)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewMenuRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"category_id", "name"}).
		AddRow(1, "Starters").
		AddRow(2, "Main Course")

	query := regexp.QuoteMeta("SELECT DISTINCT category_id, name FROM categories ORDER BY category_id")
	mock.ExpectQuery(query).WillReturnRows(rows)

	categories, err := repo.ListCategories(ctx)
	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "Starters", categories[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	// Ожидаем вызов BeginTx.
	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	query := regexp.QuoteMeta(`INSERT INTO orders (user_id, total_amount, delivery_address, contact_number, payment_method, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`)
	mock.ExpectQuery(query).
		WithArgs(int64(1), 1097, "Lenina 1", "+70001112233", "card", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	order := &models.Order{
		UserID:          1,
		TotalAmount:     1097,
		DeliveryAddress: "Lenina 1",
		ContactNumber:   "+70001112233",
		PaymentMethod:   "card",
	}
	orderID, err := repo.CreateOrder(ctx, tx, order)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), orderID)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderItem_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	query := regexp.QuoteMeta("INSERT INTO order_items (order_id, item_id, quantity, price) VALUES ($1, $2, $3, $4)")
	mock.ExpectExec(query).WithArgs(int64(5), int64(1), 2, 299).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.CreateOrderItem(ctx, tx, 5, 1, 2, 299)
	assert.NoError(t, err)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderItem_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	query := regexp.QuoteMeta("INSERT INTO order_items (order_id, item_id, quantity, price) VALUES ($1, $2, $3, $4)")
	mock.ExpectExec(query).WithArgs(int64(5), int64(99), 1, 100).
		WillReturnError(errors.New("foreign key violation"))

	err = repo.CreateOrderItem(ctx, tx, 5, 99, 1, 100)
	assert.Error(t, err)

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersByUserID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	userID := int64(1)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "total_amount", "delivery_address", "contact_number", "payment_method", "status", "created_at"}).
		AddRow(5, userID, 1097, "Lenina 1", "+70001112233", "card", "pending", now)

	query := regexp.QuoteMeta(`
		SELECT id, user_id, total_amount, delivery_address, contact_number, payment_method, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`)
	mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(rows)

	orders, err := repo.GetOrdersByUserID(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(5), orders[0].ID)
	assert.Equal(t, 1097, orders[0].TotalAmount)
	assert.Equal(t, "pending", orders[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersByUserID_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`
		SELECT id, user_id, total_amount, delivery_address, contact_number, payment_method, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`)
	mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(errors.New("query error"))

	orders, err := repo.GetOrdersByUserID(ctx, 1)
	assert.Error(t, err)
	assert.Nil(t, orders)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderItemsByOrderID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "order_id", "item_id", "quantity", "price", "name", "image_url"}).
		AddRow(10, 5, 1, 2, 299, "Garlic Bread", "/images/garlic-bread.jpg").
		AddRow(11, 5, 6, 1, 499, "Chocolate Lava Cake", "/images/lava-cake.jpg")

	query := regexp.QuoteMeta(`
		SELECT oi.id, oi.order_id, oi.item_id, oi.quantity, oi.price, mi.name, mi.image_url
		FROM order_items oi
		JOIN menu_items mi ON oi.item_id = mi.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`)
	mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnRows(rows)

	items, err := repo.GetOrderItemsByOrderID(ctx, 5)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Garlic Bread", items[0].Name)
	// цена — снимок на момент заказа, берётся из order_items
	assert.Equal(t, 299, items[0].Price)
	assert.Equal(t, int64(5), items[1].OrderID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
