package cartview

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/metalldk/storefront/internal/cart"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Controls wires the per-line quantity stepper, quantity input and remove button back into the store.
type Controls struct {
	store    *cart.Store
	notifier Notifier
}

func NewControls(store *cart.Store, notifier Notifier) (*Controls, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &Controls{store: store, notifier: notifier}, nil
}

// Increment adds one to the line quantity.
func (c *Controls) Increment(ctx context.Context, id string) (cart.Cart, error) {
	return c.step(ctx, id, 1)
}

// Decrement removes one from the line quantity, stopping at 1.
func (c *Controls) Decrement(ctx context.Context, id string) (cart.Cart, error) {
	return c.step(ctx, id, -1)
}

// SetQuantityInput applies a value typed into the quantity box. Input that
// does not start with a number, or starts with 0, counts as 1.
func (c *Controls) SetQuantityInput(ctx context.Context, id, raw string) (cart.Cart, error) {
	return c.store.UpdateQuantity(ctx, id, ParseQuantity(raw))
}

// Remove drops the line and tells the user.
func (c *Controls) Remove(ctx context.Context, id string) (cart.Cart, error) {
	out, err := c.store.RemoveItem(ctx, id)
	if err != nil {
		return out, err
	}
	if c.notifier != nil {
		c.notifier.Notify(ctx, "Item removed from cart")
	}
	return out, nil
}

func (c *Controls) step(ctx context.Context, id string, delta int) (cart.Cart, error) {
	current := c.store.Read(ctx)
	i := current.Find(id)
	if i < 0 {
		return current, nil
	}
	qty := current[i].Qty
	if delta > 0 && qty > math.MaxInt-delta {
		return current, nil
	}
	return c.store.UpdateQuantity(ctx, id, qty+delta)
}

// ParseQuantity reads the leading integer of raw, falling back to 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}
