package handlers

import (
	"net/http"
	"strconv"

	"github.com/digitalstore/storefront/internal/api/middleware"
	"github.com/digitalstore/storefront/internal/errors"
	"github.com/digitalstore/storefront/internal/models"
	service "github.com/digitalstore/storefront/internal/services"
	"github.com/digitalstore/storefront/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		query := models.ProductListQuery{
			Search:   r.URL.Query().Get("search"),
			Page:     parseIntQuery(r, "page", 1),
			PageSize: parseIntQuery(r, "page_size", 20),
		}

		products, total, err := h.productService.ListProducts(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list products", "error", err.Error())
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, models.PaginatedResponse{
			Results:  products,
			Count:    total,
			Page:     query.Page,
			PageSize: query.PageSize,
		})
	}
}

// ListFeatured responds with a bare array, not the paginated envelope.
func (h *ProductHandler) ListFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.productService.ListFeatured(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list featured products", "error", err.Error())
			response.Error(w, err)
			return
		}

		if products == nil {
			products = []*models.Product{}
		}

		response.WriteJson(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.productService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", "error", err.Error())
			response.Error(w, err)
			return
		}

		if categories == nil {
			categories = []*models.Category{}
		}

		response.WriteJson(w, http.StatusOK, categories)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))
			return
		}

		product, svcErr := h.productService.GetProductByID(r.Context(), id)
		if svcErr != nil {
			response.Error(w, svcErr)
			return
		}

		response.WriteJson(w, http.StatusOK, product)
	}
}

func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
