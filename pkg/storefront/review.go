package storefront

import (
	"context"

	"github.com/digitalstore/storefront/internal/models"
)

// ReviewAPI is the slice of the client the review flow depends on.
type ReviewAPI interface {
	Authenticated() bool
	CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, id int64, req *models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

// ReviewFlow performs authenticated review mutations. Missing credentials
// and out-of-range ratings short-circuit locally before any network call;
// ownership is enforced by the server alone and its rejections are
// surfaced unchanged.
type ReviewFlow struct {
	api ReviewAPI
}

func NewReviewFlow(api ReviewAPI) *ReviewFlow {
	return &ReviewFlow{api: api}
}

func (f *ReviewFlow) Create(ctx context.Context, productID int64, rating int, title, comment string) (*models.Review, error) {

	if !f.api.Authenticated() {
		return nil, ErrUnauthenticated
	}

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	return f.api.CreateReview(ctx, &models.CreateReviewRequest{
		ProductID: productID,
		Rating:    rating,
		Title:     title,
		Comment:   comment,
	})
}

func (f *ReviewFlow) Update(ctx context.Context, reviewID int64, rating int, title, comment string) (*models.Review, error) {

	if !f.api.Authenticated() {
		return nil, ErrUnauthenticated
	}

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	return f.api.UpdateReview(ctx, reviewID, &models.UpdateReviewRequest{
		Rating:  rating,
		Title:   title,
		Comment: comment,
	})
}

func (f *ReviewFlow) Delete(ctx context.Context, reviewID int64) error {

	if !f.api.Authenticated() {
		return ErrUnauthenticated
	}

	return f.api.DeleteReview(ctx, reviewID)
}
