package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/metalldk/storefront/internal/storage"
	"github.com/metalldk/storefront/pkg/logger"
)

// DefaultKey is the storage key holding the serialized cart.
const DefaultKey = "cartItems"

// Observer is notified with the new cart after every successful mutation.
type Observer func(ctx context.Context, c Cart)

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store owns the persisted cart. Every mutation reads the whole list,
// changes it and writes the whole list back.
type Store struct {
	kv        kvStore
	key       string
	logg      *logger.Logger
	observers []Observer
}

// NewStore builds a cart store over kv. An empty key selects DefaultKey.
func NewStore(kv kvStore, key string, logg *logger.Logger) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if key == "" {
		key = DefaultKey
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{kv: kv, key: key, logg: logg}, nil
}

// Subscribe registers an observer for cart changes.
func (s *Store) Subscribe(o Observer) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// Read returns the persisted cart. Missing, unreadable or corrupt data yields
// an empty cart; the failure is logged and never returned.
func (s *Store) Read(ctx context.Context) Cart {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return Cart{}
	}
	if err != nil {
		s.logg.Warn(s.logg.WithField(s.logg.WithField(ctx, "key", s.key), "error", err.Error()), "cart.storage.unavailable")
		return Cart{}
	}

	var items Cart
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logg.Warn(s.logg.WithField(s.logg.WithField(ctx, "key", s.key), "error", err.Error()), "cart.storage.corrupt")
		return Cart{}
	}
	return sanitize(items)
}

// Write replaces the persisted cart.
func (s *Store) Write(ctx context.Context, c Cart) error {
	if c == nil {
		c = Cart{}
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.notify(ctx, c)
	return nil
}

// AddItem increments the quantity of an existing line with the same id or appends a new one.
func (s *Store) AddItem(ctx context.Context, item LineItem) (Cart, error) {
	item = normalize(item)
	c := s.Read(ctx)
	if i := c.Find(item.ID); i >= 0 {
		c[i].Qty = clampQty(addQty(c[i].Qty, item.Qty))
	} else {
		c = append(c, item)
	}
	return c, s.Write(ctx, c)
}

// UpdateQuantity sets the quantity of a line, never below 1. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, qty int) (Cart, error) {
	c := s.Read(ctx)
	i := c.Find(id)
	if i < 0 {
		return c, nil
	}
	c[i].Qty = clampQty(qty)
	return c, s.Write(ctx, c)
}

// RemoveItem drops the line with id. Unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) (Cart, error) {
	c := s.Read(ctx)
	if c.Find(id) < 0 {
		return c, nil
	}
	out := make(Cart, 0, len(c)-1)
	for _, item := range c {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out, s.Write(ctx, out)
}

// Clear writes an empty cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.Write(ctx, Cart{})
}

func (s *Store) notify(ctx context.Context, c Cart) {
	for _, o := range s.observers {
		o(ctx, c.Clone())
	}
}

// sanitize restores the line invariants on data written by someone else:
// at most one line per id and quantities of at least 1.
func sanitize(items Cart) Cart {
	out := make(Cart, 0, len(items))
	for _, item := range items {
		item = normalize(item)
		if i := out.Find(item.ID); i >= 0 {
			out[i].Qty = addQty(out[i].Qty, item.Qty)
			continue
		}
		out = append(out, item)
	}
	return out
}
