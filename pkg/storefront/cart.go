package storefront

import (
	"sync"

	"github.com/digitalstore/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// CartItem pairs a product with a positive quantity. At most one entry per
// product exists in a cart; repeated adds increment the quantity.
type CartItem struct {
	Product  models.Product
	Quantity int
}

// Subtotal is the exact decimal price of this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Observer receives the new total item count after every cart mutation.
// Observers run synchronously inside the mutating call, before it returns.
type Observer func(totalCount int)

// Cart is a session-scoped, constructor-injected store of product
// selections. The zero value is not usable; use NewCart. Entries keep
// insertion order. All methods are safe for concurrent use, so the store
// can back a server-rendered session as well as a single-user UI loop.
type Cart struct {
	mu        sync.Mutex
	items     []CartItem
	index     map[int64]int
	observers []Observer
}

func NewCart() *Cart {
	return &Cart{index: make(map[int64]int)}
}

// Subscribe registers an observer for cart mutations. Not safe to call
// concurrently with mutations; wire observers up during construction.
func (c *Cart) Subscribe(observer Observer) {
	c.observers = append(c.observers, observer)
}

// Add inserts the product or increments its existing entry by quantity.
func (c *Cart) Add(product models.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pos, ok := c.index[product.ID]; ok {
		c.items[pos].Quantity += quantity
	} else {
		c.index[product.ID] = len(c.items)
		c.items = append(c.items, CartItem{Product: product, Quantity: quantity})
	}

	c.notifyLocked()

	return nil
}

// Remove deletes the entry if present; removing an absent product is a
// no-op, not an error.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
	c.notifyLocked()
}

// SetQuantity overwrites an entry's quantity. Zero or negative quantity
// removes the entry. Setting a quantity for a product not in the cart
// fails with ErrNotFound; it does not auto-insert.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[productID]

	if quantity <= 0 {
		c.removeLocked(productID)
		c.notifyLocked()
		return nil
	}

	if !ok {
		return ErrNotFound
	}

	c.items[pos].Quantity = quantity
	c.notifyLocked()

	return nil
}

// TotalCount returns the sum of all quantities, as shown on the badge.
func (c *Cart) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.totalCountLocked()
}

// Snapshot returns an immutable ordered copy of the current entries,
// decoupled from later mutations.
func (c *Cart) Snapshot() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]CartItem, len(c.items))
	copy(snapshot, c.items)

	return snapshot
}

// Clear empties the store.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.index = make(map[int64]int)
	c.notifyLocked()
}

func (c *Cart) removeLocked(productID int64) {
	pos, ok := c.index[productID]
	if !ok {
		return
	}

	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, productID)

	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].Product.ID] = i
	}
}

func (c *Cart) totalCountLocked() int {
	var total int

	for _, item := range c.items {
		total += item.Quantity
	}

	return total
}

func (c *Cart) notifyLocked() {
	total := c.totalCountLocked()

	for _, observer := range c.observers {
		observer(total)
	}
}

// SnapshotTotal sums price×quantity over the snapshot with exact decimal
// arithmetic.
func SnapshotTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero

	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}
