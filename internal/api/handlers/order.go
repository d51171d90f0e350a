package handlers

import (
	"log/slog"
	"net/http"

	"github.com/digitalstore/storefront/internal/api/middleware"
	"github.com/digitalstore/storefront/internal/models"
	service "github.com/digitalstore/storefront/internal/services"
	"github.com/digitalstore/storefront/internal/utils"
	"github.com/digitalstore/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
	}
}

func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateOrderRequest

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

		idempotencyKey := r.Header.Get("Idempotency-Key")

		order, err := h.orderService.CreateOrder(r.Context(), &req, idempotencyKey)
		if err != nil {
			logger.Error("Failed to create order", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order created",
			slog.Int64("orderId", order.ID),
			slog.String("total", order.TotalAmount.StringFixed(2)))

		response.WriteJson(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := parseIDPathValue(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		order, svcErr := h.orderService.GetOrderByID(r.Context(), id)
		if svcErr != nil {
			response.Error(w, svcErr)
			return
		}

		response.WriteJson(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page := parseIntQuery(r, "page", 1)
		size := parseIntQuery(r, "page_size", 20)

		orders, total, err := h.orderService.ListOrders(r.Context(), page, size)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, models.PaginatedResponse{
			Results:  orders,
			Count:    total,
			Page:     page,
			PageSize: size,
		})
	}
}
