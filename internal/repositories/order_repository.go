package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/digitalstore/storefront/internal/models"
	"github.com/digitalstore/storefront/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (customer_name, customer_email, total_amount, status, idempotency_key)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(dbCtx, orderQuery,
		order.CustomerName, order.CustomerEmail, order.TotalAmount, order.Status, order.IdempotencyKey).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_name, product_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]

		err = tx.QueryRowContext(dbCtx, itemQuery,
			order.ID, item.ProductName, item.ProductPrice, item.Quantity, item.Subtotal).
			Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

const orderColumns = `id, customer_name, customer_email, total_amount, status, COALESCE(idempotency_key, ''), created_at, updated_at`

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order := &models.Order{}

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.TotalAmount, &order.Status,
			&order.IdempotencyKey, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := r.loadItems(dbCtx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE idempotency_key = $1`

	order := &models.Order{}

	err := r.DB.QueryRowContext(dbCtx, query, key).
		Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.TotalAmount, &order.Status,
			&order.IdempotencyKey, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := r.loadItems(dbCtx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var orders []*models.Order

	for rows.Next() {
		order := &models.Order{}

		err := rows.Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.TotalAmount, &order.Status,
			&order.IdempotencyKey, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, order := range orders {
		if err := r.loadItems(dbCtx, order); err != nil {
			return nil, 0, err
		}
	}

	return orders, total, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *models.Order) error {

	query := `
		SELECT id, product_name, product_price, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("querying order items: %w", err)
	}

	defer rows.Close()

	order.Items = []models.OrderItem{}

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.ProductName, &item.ProductPrice, &item.Quantity, &item.Subtotal); err != nil {
			return err
		}

		order.Items = append(order.Items, item)
	}

	return rows.Err()
}
