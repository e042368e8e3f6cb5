package cartview

import (
	"context"
	"sync"

	"github.com/metalldk/storefront/internal/cart"
)

// Badge tracks the header cart counter: the sum of quantities.
type Badge struct {
	mu       sync.Mutex
	count    int
	onChange func(count int)
}

// NewBadge seeds the counter from the current cart.
func NewBadge(initial cart.Cart, onChange func(count int)) *Badge {
	return &Badge{count: initial.Count(), onChange: onChange}
}

// Observe recomputes the counter. It has the cart.Observer signature.
func (b *Badge) Observe(_ context.Context, c cart.Cart) {
	b.mu.Lock()
	b.count = c.Count()
	count := b.count
	b.mu.Unlock()
	if b.onChange != nil {
		b.onChange(count)
	}
}

// Count returns the last computed value.
func (b *Badge) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
