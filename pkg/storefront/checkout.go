package storefront

import (
	"context"
	"fmt"

	"github.com/digitalstore/storefront/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OrderAPI is the slice of the client the checkout flow depends on.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest, idempotencyKey string) (*models.Order, error)
}

// CheckoutFlow converts a cart snapshot into an order request. Each line
// captures the product name and price at submission time; the total is the
// exact decimal sum of price×quantity. On success the cart is cleared; on
// any failure it is left untouched so the user can retry.
type CheckoutFlow struct {
	api      OrderAPI
	cart     *Cart
	validate *validator.Validate

	// pendingKey survives ambiguous failures so a retry dedupes
	// server-side instead of creating a second order.
	pendingKey string
}

func NewCheckoutFlow(api OrderAPI, cart *Cart) *CheckoutFlow {
	return &CheckoutFlow{
		api:      api,
		cart:     cart,
		validate: validator.New(),
	}
}

// Submit places an order for the current cart contents.
//
// Each attempt carries an idempotency key. The key is generated on the
// first attempt and reused until the server answers definitively; when the
// transport fails without a server response the error wraps
// ErrSubmissionUnknown, the order may exist server-side, and the cart is
// deliberately not cleared.
func (f *CheckoutFlow) Submit(ctx context.Context, customerName, customerEmail string) (*models.Order, error) {

	snapshot := f.cart.Snapshot()

	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	if err := f.validate.Var(customerName, "required"); err != nil {
		return nil, fmt.Errorf("customer name is required: %w", err)
	}

	if err := f.validate.Var(customerEmail, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid customer email: %w", err)
	}

	req := &models.CreateOrderRequest{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Items:         make([]models.CreateOrderItemRequest, 0, len(snapshot)),
	}

	for _, item := range snapshot {
		req.Items = append(req.Items, models.CreateOrderItemRequest{
			ProductName:  item.Product.Name,
			ProductPrice: item.Product.Price,
			Quantity:     item.Quantity,
		})
	}

	if f.pendingKey == "" {
		f.pendingKey = uuid.NewString()
	}

	order, err := f.api.CreateOrder(ctx, req, f.pendingKey)
	if err != nil {
		if _, definitive := IsAPIError(err); definitive {
			f.pendingKey = ""
			return nil, err
		}
		// No status came back, so the outcome is genuinely unknown.
		return nil, fmt.Errorf("%w: %v", ErrSubmissionUnknown, err)
	}

	f.pendingKey = ""
	f.cart.Clear()

	return order, nil
}
