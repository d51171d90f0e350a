package service

import (
	"context"
	"time"

	"github.com/digitalstore/storefront/internal/models"
	"github.com/digitalstore/storefront/pkg/sendgrid"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	if product := args.Get(0); product != nil {
		return product.(*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, query models.ProductListQuery) ([]*models.Product, int, error) {
	args := m.Called(ctx, query)

	if products := args.Get(0); products != nil {
		return products.([]*models.Product), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *MockProductRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, limit)

	if products := args.Get(0); products != nil {
		return products.([]*models.Product), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)

	if categories := args.Get(0); categories != nil {
		return categories.([]*models.Category), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)

	if order := args.Get(0); order != nil {
		return order.(*models.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	args := m.Called(ctx, key)

	if order := args.Get(0); order != nil {
		return order.(*models.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, page, size int) ([]*models.Order, int, error) {
	args := m.Called(ctx, page, size)

	if orders := args.Get(0); orders != nil {
		return orders.([]*models.Order), args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)

	return args.Error(0)
}

func (m *MockReviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)

	if review := args.Get(0); review != nil {
		return review.(*models.Review), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockReviewRepository) GetReviewByUserAndProduct(ctx context.Context, userID, productID int64) (*models.Review, error) {
	args := m.Called(ctx, userID, productID)

	if review := args.Get(0); review != nil {
		return review.(*models.Review), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockReviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)

	return args.Error(0)
}

func (m *MockReviewRepository) DeleteReview(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockReviewRepository) ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	args := m.Called(ctx, productID)

	if reviews := args.Get(0); reviews != nil {
		return reviews.([]models.Review), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockReviewRepository) ListReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	args := m.Called(ctx, userID)

	if reviews := args.Get(0); reviews != nil {
		return reviews.([]models.Review), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)

	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, value any) (bool, error) {
	args := m.Called(ctx, key, value)

	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()

	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, req *sendgrid.EmailRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
