package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/digitalstore/storefront/internal/errors"
	"github.com/digitalstore/storefront/internal/models"
	repository "github.com/digitalstore/storefront/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID int64, req *models.CreateReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID int64, req *models.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID int64) error
	ProductReviews(ctx context.Context, productID int64) (*models.ProductReviewsResponse, error)
	MyReviews(ctx context.Context, userID int64) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	sanitizer   *bluemonday.Policy
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID int64, req *models.CreateReviewRequest) (*models.Review, error) {

	if req.Rating < 1 || req.Rating > 5 {
		return nil, appErrors.InvalidRatingError("Rating must be between 1 and 5")
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	// One review per (user, product); the DB unique constraint backs this up.
	if _, err := s.reviewRepo.GetReviewByUserAndProduct(ctx, userID, req.ProductID); err == nil {
		return nil, appErrors.DuplicateEntryError("You have already reviewed this product. You can update your existing review instead.")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to check existing review").WithError(err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, appErrors.NotFoundError("User not found").WithError(err)
	}

	review := &models.Review{
		ProductID:   req.ProductID,
		ProductName: product.Name,
		User:        models.ReviewUser{ID: user.ID, Name: user.Name},
		Rating:      req.Rating,
		Title:       s.sanitizer.Sanitize(req.Title),
		Comment:     s.sanitizer.Sanitize(req.Comment),
	}

	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, appErrors.DatabaseError("Failed to create review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID int64, req *models.UpdateReviewRequest) (*models.Review, error) {

	if req.Rating < 1 || req.Rating > 5 {
		return nil, appErrors.InvalidRatingError("Rating must be between 1 and 5")
	}

	review, err := s.getOwnedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Title = s.sanitizer.Sanitize(req.Title)
	review.Comment = s.sanitizer.Sanitize(req.Comment)

	if err := s.reviewRepo.UpdateReview(ctx, review); err != nil {
		return nil, appErrors.DatabaseError("Failed to update review").WithError(err)
	}

	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID int64) error {

	if _, err := s.getOwnedReview(ctx, userID, reviewID); err != nil {
		return err
	}

	if err := s.reviewRepo.DeleteReview(ctx, reviewID); err != nil {
		return appErrors.DatabaseError("Failed to delete review").WithError(err)
	}

	return nil
}

func (s *reviewService) ProductReviews(ctx context.Context, productID int64) (*models.ProductReviewsResponse, error) {

	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	reviews, err := s.reviewRepo.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	resp := &models.ProductReviewsResponse{
		Reviews:      reviews,
		TotalReviews: len(reviews),
	}

	if len(reviews) > 0 {
		var sum int
		for _, review := range reviews {
			sum += review.Rating
		}
		// Rounded to two decimals to match the wire shape.
		resp.AverageRating = float64(int(float64(sum)/float64(len(reviews))*100+0.5)) / 100
	}

	return resp, nil
}

func (s *reviewService) MyReviews(ctx context.Context, userID int64) ([]models.Review, error) {

	reviews, err := s.reviewRepo.ListReviewsByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	return reviews, nil
}

func (s *reviewService) getOwnedReview(ctx context.Context, userID, reviewID int64) (*models.Review, error) {

	review, err := s.reviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Review not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch review").WithError(err)
	}

	if review.User.ID != userID {
		return nil, appErrors.ForbiddenError("You can only modify your own reviews")
	}

	return review, nil
}
