package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/digitalstore/storefront/internal/api/middleware"
	"github.com/digitalstore/storefront/internal/errors"
	"github.com/digitalstore/storefront/internal/models"
	service "github.com/digitalstore/storefront/internal/services"
	"github.com/digitalstore/storefront/internal/utils"
	"github.com/digitalstore/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateReviewRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, err)
			return
		}

		if err := h.validator.Struct(req); err != nil {
			if validationErrs, ok := err.(validator.ValidationErrors); ok {
				response.ValidationError(w, validationErrs)
				return
			}
			response.Error(w, err)
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to create review", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusCreated, review)
	}
}

func (h *ReviewHandler) UpdateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := parseIDPathValue(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateReviewRequest

		if decodeErr := utils.DecodeJSONBody(r, &req); decodeErr != nil {
			response.Error(w, decodeErr)
			return
		}

		if validateErr := h.validator.Struct(req); validateErr != nil {
			if validationErrs, ok := validateErr.(validator.ValidationErrors); ok {
				response.ValidationError(w, validationErrs)
				return
			}
			response.Error(w, validateErr)
			return
		}

		review, svcErr := h.reviewService.UpdateReview(r.Context(), claims.UserID, id, &req)
		if svcErr != nil {
			response.Error(w, svcErr)
			return
		}

		response.WriteJson(w, http.StatusOK, review)
	}
}

func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := parseIDPathValue(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if svcErr := h.reviewService.DeleteReview(r.Context(), claims.UserID, id); svcErr != nil {
			response.Error(w, svcErr)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *ReviewHandler) ProductReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		rawID := r.URL.Query().Get("product_id")
		if rawID == "" {
			response.Error(w, errors.BadRequestError("product_id parameter is required"))
			return
		}

		productID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product_id parameter"))
			return
		}

		reviews, svcErr := h.reviewService.ProductReviews(r.Context(), productID)
		if svcErr != nil {
			response.Error(w, svcErr)
			return
		}

		response.WriteJson(w, http.StatusOK, reviews)
	}
}

func (h *ReviewHandler) MyReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		reviews, err := h.reviewService.MyReviews(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, reviews)
	}
}
