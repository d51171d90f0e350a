package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/digitalstore/storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRows = []string{
	"id", "customer_name", "customer_email", "total_amount", "status", "idempotency_key", "created_at", "updated_at",
}

func testOrder() *models.Order {
	return &models.Order{
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		TotalAmount:   decimal.RequireFromString("24.48"),
		Status:        models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductName: "Spotify Premium", ProductPrice: decimal.RequireFromString("9.99"), Quantity: 2, Subtotal: decimal.RequireFromString("19.98")},
			{ProductName: "Disney Plus", ProductPrice: decimal.RequireFromString("4.50"), Quantity: 1, Subtotal: decimal.RequireFromString("4.50")},
		},
	}
}

func TestOrderRepoCreateOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Success - order and items inserted in one transaction", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOrderRepo(db)
		order := testOrder()

		mockDB.ExpectBegin()
		mockDB.ExpectQuery(`INSERT INTO orders`).
			WithArgs("Test Customer", "customer@example.com", sqlmock.AnyArg(), models.OrderStatusPending, "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))
		mockDB.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(int64(7), "Spotify Premium", sqlmock.AnyArg(), 2, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mockDB.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(int64(7), "Disney Plus", sqlmock.AnyArg(), 1, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mockDB.ExpectCommit()

		err = repo.CreateOrder(ctx, order)

		require.NoError(t, err)
		assert.Equal(t, int64(7), order.ID)
		assert.Equal(t, int64(1), order.Items[0].ID)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - item insert rolls the order back", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOrderRepo(db)
		order := testOrder()

		mockDB.ExpectBegin()
		mockDB.ExpectQuery(`INSERT INTO orders`).
			WithArgs("Test Customer", "customer@example.com", sqlmock.AnyArg(), models.OrderStatusPending, "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))
		mockDB.ExpectQuery(`INSERT INTO order_items`).
			WillReturnError(errors.New("constraint violation"))
		mockDB.ExpectRollback()

		err = repo.CreateOrder(ctx, order)

		assert.Error(t, err)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestOrderRepoGetOrderByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	mockDB.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(orderRows).
			AddRow(7, "Test Customer", "customer@example.com", "24.48", "pending", "key-123", now, now))

	mockDB.ExpectQuery(`SELECT (.+) FROM order_items`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "product_price", "quantity", "subtotal"}).
			AddRow(1, "Spotify Premium", "9.99", 2, "19.98"))

	order, err := repo.GetOrderByID(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "24.48", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestOrderRepoGetOrderByIdempotencyKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Unseen key surfaces sql.ErrNoRows", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewOrderRepo(db)

		mockDB.ExpectQuery(`SELECT (.+) FROM orders WHERE idempotency_key = \$1`).
			WithArgs("fresh-key").
			WillReturnError(sql.ErrNoRows)

		order, err := repo.GetOrderByIdempotencyKey(ctx, "fresh-key")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestOrderRepoListOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepo(db)

	mockDB.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mockDB.ExpectQuery(`SELECT (.+) FROM orders ORDER BY created_at DESC`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(orderRows).
			AddRow(2, "A", "a@example.com", "10.00", "pending", "", now, now).
			AddRow(1, "B", "b@example.com", "5.00", "pending", "", now, now))

	for _, id := range []int64{2, 1} {
		mockDB.ExpectQuery(`SELECT (.+) FROM order_items`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "product_price", "quantity", "subtotal"}))
	}

	orders, total, err := repo.ListOrders(ctx, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(2), orders[0].ID)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
