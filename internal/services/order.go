package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	appErrors "github.com/digitalstore/storefront/internal/errors"
	"github.com/digitalstore/storefront/internal/models"
	repository "github.com/digitalstore/storefront/internal/repositories"
	"github.com/digitalstore/storefront/pkg/sendgrid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest, idempotencyKey string) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error)
}

type orderService struct {
	repo  repository.OrderRepository
	email sendgrid.EmailService
}

func NewOrderService(repo repository.OrderRepository, email sendgrid.EmailService) OrderService {
	return &orderService{repo: repo, email: email}
}

// CreateOrder snapshots each line's name and price as submitted and computes
// total_amount with exact decimal arithmetic. A repeated Idempotency-Key
// returns the originally created order instead of a duplicate.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, idempotencyKey string) (*models.Order, error) {

	if len(req.Items) == 0 {
		return nil, appErrors.EmptyCartError("Cannot create order with no items")
	}

	if idempotencyKey != "" {
		existing, err := s.repo.GetOrderByIdempotencyKey(ctx, idempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.DatabaseError("Failed to check idempotency key").WithError(err)
		}
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, appErrors.InvalidQuantityError("Quantity must be a positive integer")
		}

		if item.ProductPrice.IsNegative() {
			return nil, appErrors.ValidationError("Product price cannot be negative")
		}

		subtotal := item.ProductPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)

		items = append(items, models.OrderItem{
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			Subtotal:     subtotal,
		})
	}

	order := &models.Order{
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		TotalAmount:    total,
		Status:         models.OrderStatusPending,
		IdempotencyKey: idempotencyKey,
		Items:          items,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	s.sendConfirmation(ctx, order)

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	orders, total, err := s.repo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// Confirmation email is best effort; a delivery failure never fails the order.
func (s *orderService) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.email == nil {
		return
	}

	req := &sendgrid.EmailRequest{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Order #%d confirmed", order.ID),
		Content: fmt.Sprintf("Hi %s, your order #%d for %s has been received and is now %s.",
			order.CustomerName, order.ID, order.TotalAmount.StringFixed(2), order.Status),
	}

	if err := s.email.Send(ctx, req); err != nil {
		slog.Warn("Failed to send order confirmation email",
			slog.Int64("orderId", order.ID),
			slog.String("error", err.Error()))
	}
}
