package service

import (
	"context"
	"database/sql"
	"testing"

	appErrors "github.com/digitalstore/storefront/internal/errors"
	"github.com/digitalstore/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewService(t *testing.T) (*MockReviewRepository, *MockProductRepository, *MockUserRepository, ReviewService) {
	t.Helper()

	reviewRepo := &MockReviewRepository{}
	productRepo := &MockProductRepository{}
	userRepo := &MockUserRepository{}

	return reviewRepo, productRepo, userRepo, NewReviewService(reviewRepo, productRepo, userRepo)
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - markup is stripped from title and comment", func(t *testing.T) {
		// Arrange
		reviewRepo, productRepo, userRepo, svc := newReviewService(t)

		productRepo.On("GetProductByID", ctx, int64(5)).Return(&models.Product{ID: 5, Name: "Spotify Premium"}, nil).Once()
		reviewRepo.On("GetReviewByUserAndProduct", ctx, int64(1), int64(5)).Return(nil, sql.ErrNoRows).Once()
		userRepo.On("GetUserByID", ctx, int64(1)).Return(&models.User{ID: 1, Name: "Test User"}, nil).Once()
		reviewRepo.On("CreateReview", ctx, mock.MatchedBy(func(review *models.Review) bool {
			return review.Title == "Great" && review.Comment == "worked fine"
		})).Return(nil).Once()

		// Act
		review, err := svc.CreateReview(ctx, 1, &models.CreateReviewRequest{
			ProductID: 5,
			Rating:    5,
			Title:     "<b>Great</b>",
			Comment:   "worked fine<script>alert(1)</script>",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Spotify Premium", review.ProductName)
		assert.Equal(t, "Test User", review.User.Name)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - rating out of range", func(t *testing.T) {
		reviewRepo, _, _, svc := newReviewService(t)

		for _, rating := range []int{0, 6} {
			review, err := svc.CreateReview(ctx, 1, &models.CreateReviewRequest{ProductID: 5, Rating: rating})

			assert.Nil(t, review)

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, appErrors.ErrCodeInvalidRating, appErr.Code)
		}

		reviewRepo.AssertNotCalled(t, "CreateReview")
	})

	t.Run("Failure - product does not exist", func(t *testing.T) {
		_, productRepo, _, svc := newReviewService(t)

		productRepo.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		review, err := svc.CreateReview(ctx, 1, &models.CreateReviewRequest{ProductID: 99, Rating: 4})

		assert.Nil(t, review)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - user already reviewed this product", func(t *testing.T) {
		reviewRepo, productRepo, _, svc := newReviewService(t)

		productRepo.On("GetProductByID", ctx, int64(5)).Return(&models.Product{ID: 5}, nil).Once()
		reviewRepo.On("GetReviewByUserAndProduct", ctx, int64(1), int64(5)).Return(&models.Review{ID: 3}, nil).Once()

		review, err := svc.CreateReview(ctx, 1, &models.CreateReviewRequest{ProductID: 5, Rating: 4})

		assert.Nil(t, review)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		reviewRepo.AssertNotCalled(t, "CreateReview")
	})
}

func TestUpdateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - owner updates their review", func(t *testing.T) {
		reviewRepo, _, _, svc := newReviewService(t)

		existing := &models.Review{ID: 3, User: models.ReviewUser{ID: 1}, Rating: 2}
		reviewRepo.On("GetReviewByID", ctx, int64(3)).Return(existing, nil).Once()
		reviewRepo.On("UpdateReview", ctx, mock.MatchedBy(func(review *models.Review) bool {
			return review.Rating == 4 && review.Title == "Better now"
		})).Return(nil).Once()

		review, err := svc.UpdateReview(ctx, 1, 3, &models.UpdateReviewRequest{Rating: 4, Title: "Better now"})

		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - not the owner", func(t *testing.T) {
		reviewRepo, _, _, svc := newReviewService(t)

		existing := &models.Review{ID: 3, User: models.ReviewUser{ID: 2}}
		reviewRepo.On("GetReviewByID", ctx, int64(3)).Return(existing, nil).Once()

		review, err := svc.UpdateReview(ctx, 1, 3, &models.UpdateReviewRequest{Rating: 4})

		assert.Nil(t, review)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
		reviewRepo.AssertNotCalled(t, "UpdateReview")
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		reviewRepo, _, _, svc := newReviewService(t)

		existing := &models.Review{ID: 3, User: models.ReviewUser{ID: 1}}
		reviewRepo.On("GetReviewByID", ctx, int64(3)).Return(existing, nil).Once()
		reviewRepo.On("DeleteReview", ctx, int64(3)).Return(nil).Once()

		err := svc.DeleteReview(ctx, 1, 3)

		require.NoError(t, err)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("Failure - review not found", func(t *testing.T) {
		reviewRepo, _, _, svc := newReviewService(t)

		reviewRepo.On("GetReviewByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		err := svc.DeleteReview(ctx, 1, 99)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		reviewRepo.AssertNotCalled(t, "DeleteReview")
	})
}

func TestProductReviews(t *testing.T) {
	ctx := context.Background()

	t.Run("Average rating is rounded to two decimals", func(t *testing.T) {
		reviewRepo, productRepo, _, svc := newReviewService(t)

		productRepo.On("GetProductByID", ctx, int64(5)).Return(&models.Product{ID: 5}, nil).Once()
		reviewRepo.On("ListReviewsByProduct", ctx, int64(5)).Return([]models.Review{
			{ID: 1, Rating: 5},
			{ID: 2, Rating: 4},
			{ID: 3, Rating: 4},
		}, nil).Once()

		resp, err := svc.ProductReviews(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalReviews)
		assert.Equal(t, 4.33, resp.AverageRating)
	})

	t.Run("No reviews yields zero average", func(t *testing.T) {
		reviewRepo, productRepo, _, svc := newReviewService(t)

		productRepo.On("GetProductByID", ctx, int64(5)).Return(&models.Product{ID: 5}, nil).Once()
		reviewRepo.On("ListReviewsByProduct", ctx, int64(5)).Return([]models.Review{}, nil).Once()

		resp, err := svc.ProductReviews(ctx, 5)

		require.NoError(t, err)
		assert.Zero(t, resp.AverageRating)
		assert.Zero(t, resp.TotalReviews)
		assert.NotNil(t, resp.Reviews)
	})
}
