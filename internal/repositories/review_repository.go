package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/digitalstore/storefront/internal/models"
	"github.com/digitalstore/storefront/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	GetReviewByUserAndProduct(ctx context.Context, userID, productID int64) (*models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id int64) error
	ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error)
	ListReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

const reviewColumns = `r.id, r.product_id, p.name, r.user_id, u.name, r.rating, r.title, r.comment, r.created_at, r.updated_at`

const reviewJoins = `
	FROM reviews r
	JOIN products p ON r.product_id = p.id
	JOIN users u ON r.user_id = u.id`

func scanReview(scanner interface{ Scan(...any) error }) (*models.Review, error) {
	review := &models.Review{}

	err := scanner.Scan(&review.ID, &review.ProductID, &review.ProductName,
		&review.User.ID, &review.User.Name,
		&review.Rating, &review.Title, &review.Comment, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (product_id, user_id, rating, title, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query,
		review.ProductID, review.User.ID, review.Rating, review.Title, review.Comment).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + reviewColumns + reviewJoins + ` WHERE r.id = $1`

	review, err := scanReview(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) GetReviewByUserAndProduct(ctx context.Context, userID, productID int64) (*models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + reviewColumns + reviewJoins + ` WHERE r.user_id = $1 AND r.product_id = $2`

	review, err := scanReview(r.DB.QueryRowContext(dbCtx, query, userID, productID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE reviews
		SET rating = $1, title = $2, comment = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, review.Rating, review.Title, review.Comment, review.ID).
		Scan(&review.UpdatedAt)
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *reviewRepository) ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	return r.list(ctx, ` WHERE r.product_id = $1`, productID)
}

func (r *reviewRepository) ListReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	return r.list(ctx, ` WHERE r.user_id = $1`, userID)
}

func (r *reviewRepository) list(ctx context.Context, where string, arg any) ([]models.Review, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + reviewColumns + reviewJoins + where + ` ORDER BY r.created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, arg)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	reviews := []models.Review{}

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}

	return reviews, rows.Err()
}
