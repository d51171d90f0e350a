package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/digitalstore/storefront/internal/cache"
	appErrors "github.com/digitalstore/storefront/internal/errors"
	"github.com/digitalstore/storefront/internal/models"
	repository "github.com/digitalstore/storefront/internal/repositories"
)

const featuredLimit = 8

type ProductService interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, query models.ProductListQuery) ([]*models.Product, int, error)
	ListFeatured(ctx context.Context) ([]*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type productService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// cacheTTL bounds staleness of catalog reads; zero falls back to the cache
// default.
func NewProductService(repo repository.ProductRepository, productCache cache.Cache, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, cache: productCache, cacheTTL: cacheTTL}
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, fmt.Sprintf("%d", id))

	if s.cache != nil {
		var cached models.Product

		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	s.cacheSet(ctx, key, product)

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, query models.ProductListQuery) ([]*models.Product, int, error) {

	if query.Page < 1 {
		query.Page = 1
	}

	if query.PageSize < 1 || query.PageSize > 50 {
		query.PageSize = 20
	}

	products, total, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) ListFeatured(ctx context.Context) ([]*models.Product, error) {

	key := cache.Key(cache.FeaturedKeyPrefix, "all")

	if s.cache != nil {
		var cached []*models.Product

		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	products, err := s.repo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch featured products").WithError(err)
	}

	s.cacheSet(ctx, key, products)

	return products, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	key := cache.Key(cache.CategoryKeyPrefix, "all")

	if s.cache != nil {
		var cached []*models.Category

		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	s.cacheSet(ctx, key, categories)

	return categories, nil
}

// Cache writes are best effort, a miss just costs one extra query.
func (s *productService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		slog.Warn("Failed to cache value", slog.String("key", key), slog.String("error", err.Error()))
	}
}
