package models

import "time"

type ReviewUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Review struct {
	ID          int64      `json:"id"`
	ProductID   int64      `json:"product"`
	ProductName string     `json:"product_name"`
	User        ReviewUser `json:"user"`
	Rating      int        `json:"rating"`
	Title       string     `json:"title"`
	Comment     string     `json:"comment"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateReviewRequest struct {
	ProductID int64  `json:"product" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"required,max=200"`
	Comment   string `json:"comment" validate:"required"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,max=200"`
	Comment string `json:"comment" validate:"required"`
}

// ProductReviewsResponse is the aggregate shape served by the
// product_reviews endpoint.
type ProductReviewsResponse struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
}
