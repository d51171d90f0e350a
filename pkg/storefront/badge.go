package storefront

import "sync/atomic"

// Badge mirrors the cart's total item count for the navigation shell. It
// is a pure read-only subscriber: cart mutations update it synchronously
// before the mutating call returns, so the badge is always consistent
// within the same rendering pass.
type Badge struct {
	count atomic.Int64
}

// NewBadge subscribes a badge to the cart.
func NewBadge(cart *Cart) *Badge {
	badge := &Badge{}
	badge.count.Store(int64(cart.TotalCount()))

	cart.Subscribe(func(totalCount int) {
		badge.count.Store(int64(totalCount))
	})

	return badge
}

func (b *Badge) Count() int {
	return int(b.count.Load())
}
