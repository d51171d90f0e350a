package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/digitalstore/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRows = []string{
	"id", "name", "slug", "description", "price", "image", "stock", "is_active", "created_at", "updated_at",
	"cat_id", "cat_name", "cat_slug", "cat_description",
}

func TestProductRepoGetProductByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Success - product with category", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductRepo(db)

		rows := sqlmock.NewRows(productRows).
			AddRow(5, "Spotify Premium", "spotify-premium", "Music streaming", "9.99", "spotify.png", 100, true, now, now,
				1, "Streaming", "streaming", "Streaming services")

		mockDB.ExpectQuery(`SELECT (.+) FROM products p\s+LEFT JOIN categories c`).
			WithArgs(int64(5)).
			WillReturnRows(rows)

		product, err := repo.GetProductByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, "Spotify Premium", product.Name)
		assert.Equal(t, "9.99", product.Price.StringFixed(2))
		require.NotNil(t, product.Category)
		assert.Equal(t, "Streaming", product.Category.Name)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - product without category", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductRepo(db)

		rows := sqlmock.NewRows(productRows).
			AddRow(6, "Gift Card", "gift-card", "", "25.00", "", 999, true, now, now,
				nil, nil, nil, nil)

		mockDB.ExpectQuery(`SELECT (.+) FROM products p\s+LEFT JOIN categories c`).
			WithArgs(int64(6)).
			WillReturnRows(rows)

		product, err := repo.GetProductByID(ctx, 6)

		require.NoError(t, err)
		assert.Nil(t, product.Category)
	})

	t.Run("Failure - not found surfaces sql.ErrNoRows", func(t *testing.T) {
		db, mockDB, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewProductRepo(db)

		mockDB.ExpectQuery(`SELECT (.+) FROM products p`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		product, err := repo.GetProductByID(ctx, 99)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestProductRepoListProducts(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	mockDB.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WithArgs("%spotify%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(productRows).
		AddRow(5, "Spotify Premium", "spotify-premium", "Music streaming", "9.99", "", 100, true, now, now,
			nil, nil, nil, nil)

	mockDB.ExpectQuery(`SELECT (.+) FROM products p\s+LEFT JOIN categories c(.+)ILIKE`).
		WithArgs("%spotify%", 20, 0).
		WillReturnRows(rows)

	products, total, err := repo.ListProducts(ctx, models.ProductListQuery{Search: "spotify", Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, int64(5), products[0].ID)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestProductRepoListFeatured(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	rows := sqlmock.NewRows(productRows).
		AddRow(1, "Spotify Premium", "spotify-premium", "", "9.99", "", 10, true, now, now, nil, nil, nil, nil).
		AddRow(2, "Disney Plus", "disney-plus", "", "4.50", "", 10, true, now, now, nil, nil, nil, nil)

	mockDB.ExpectQuery(`SELECT (.+) FROM products p(.+)LIMIT \$1`).
		WithArgs(8).
		WillReturnRows(rows)

	products, err := repo.ListFeatured(ctx, 8)

	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestProductRepoListCategories(t *testing.T) {
	ctx := context.Background()

	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepo(db)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "description"}).
		AddRow(1, "Music", "music", "").
		AddRow(2, "Streaming", "streaming", "")

	mockDB.ExpectQuery(`SELECT id, name, slug, description FROM categories ORDER BY name`).
		WillReturnRows(rows)

	categories, err := repo.ListCategories(ctx)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Music", categories[0].Name)
}
