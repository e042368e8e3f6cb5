package devstore

import (
	"context"
	"math"
	"strings"

	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/storefront"
)

// Cart returns the server-held lines for cartID. An unknown cart is empty.
func (s *Store) Cart(ctx context.Context, cartID string) []storefront.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.carts[cartID]
	out := make([]storefront.CartItem, len(lines))
	copy(out, lines)
	return out
}

// AddToCart inserts the line or adds its quantity to the existing one.
func (s *Store) AddToCart(ctx context.Context, cartID string, item storefront.CartItem) error {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "id required")
	}
	if item.Qty <= 0 {
		item.Qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].ID == item.ID {
			if item.Qty > math.MaxInt-lines[i].Qty {
				lines[i].Qty = math.MaxInt
			} else {
				lines[i].Qty += item.Qty
			}
			return nil
		}
	}
	s.carts[cartID] = append(lines, item)
	return nil
}

// SetCartQty overwrites the quantity of one line. Non-positive quantities become 1.
func (s *Store) SetCartQty(ctx context.Context, cartID, itemID string, qty int) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "id required")
	}
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].ID == itemID {
			lines[i].Qty = qty
		}
	}
	return nil
}

// RemoveFromCart drops one line. Removing an absent line is not an error.
func (s *Store) RemoveFromCart(ctx context.Context, cartID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[cartID]
	kept := lines[:0]
	for _, line := range lines {
		if line.ID != itemID {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		delete(s.carts, cartID)
		return
	}
	s.carts[cartID] = kept
}

// ClearCart drops every line of the cart.
func (s *Store) ClearCart(ctx context.Context, cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
}
