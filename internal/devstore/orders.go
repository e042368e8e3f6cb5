package devstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/storefront"
)

const orderStatusActive = "active"

// ItemOrder is one product line placed through the cart.
type ItemOrder struct {
	ID        int64           `json:"id"`
	ItemID    string          `json:"item_id"`
	Title     string          `json:"title"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Phone     string          `json:"phone"`
	UserEmail string          `json:"user_login,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ServiceOrder is a request placed from the services page.
type ServiceOrder struct {
	ID        int64     `json:"id"`
	Service   string    `json:"service"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Batch groups the item orders created by one checkout.
type Batch struct {
	Orders    []ItemOrder
	Phone     string
	UserEmail string
	Total     decimal.Decimal
}

// Summary renders the batch the way a manager reads it in a chat notification.
func (b Batch) Summary() string {
	var sb strings.Builder
	sb.WriteString("New cart order\n")
	if b.UserEmail != "" {
		fmt.Fprintf(&sb, "User: %s\n", b.UserEmail)
	}
	if b.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	}
	for _, o := range b.Orders {
		fmt.Fprintf(&sb, "• %s — %d pcs — %s ₽\n", o.Title, o.Qty, o.Total.StringFixed(2))
	}
	fmt.Fprintf(&sb, "Total: %s ₽", b.Total.StringFixed(2))
	return sb.String()
}

// PlaceBatch records one item order per line. An empty phone falls back to the
// account's phone when user is non-nil.
func (s *Store) PlaceBatch(ctx context.Context, order storefront.BatchOrder, user *User) (*Batch, error) {
	if len(order.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty items")
	}

	batch := &Batch{Phone: strings.TrimSpace(order.Phone), Total: decimal.Zero}
	if user != nil {
		batch.UserEmail = user.Email
		if batch.Phone == "" {
			batch.Phone = user.Phone
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	for _, item := range order.Items {
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}
		price := decimal.NewFromFloat(item.Price)
		total := price.Mul(decimal.NewFromInt(int64(qty)))
		s.nextItemID++
		o := ItemOrder{
			ID:        s.nextItemID,
			ItemID:    strings.TrimSpace(item.ItemID),
			Title:     strings.TrimSpace(item.Title),
			Qty:       qty,
			Price:     price,
			Total:     total,
			Phone:     batch.Phone,
			UserEmail: batch.UserEmail,
			Status:    orderStatusActive,
			CreatedAt: now,
		}
		s.itemOrders = append(s.itemOrders, o)
		batch.Orders = append(batch.Orders, o)
		batch.Total = batch.Total.Add(total)
	}
	return batch, nil
}

// CreateServiceOrder stores the request and returns it with its new id.
func (s *Store) CreateServiceOrder(ctx context.Context, req storefront.ServiceOrder) (*ServiceOrder, error) {
	o := ServiceOrder{
		Service: strings.TrimSpace(req.Service),
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Status:  orderStatusActive,
	}
	if o.Service == "" || o.Name == "" || o.Phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service, name and phone are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextServiceID++
	o.ID = s.nextServiceID
	o.CreatedAt = s.now().UTC()
	s.serviceOrders = append(s.serviceOrders, o)
	return &o, nil
}

// ItemOrders lists placed item orders, newest first.
func (s *Store) ItemOrders(ctx context.Context) []ItemOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ItemOrder, 0, len(s.itemOrders))
	for i := len(s.itemOrders) - 1; i >= 0; i-- {
		out = append(out, s.itemOrders[i])
	}
	return out
}

// ServiceOrders lists service requests, newest first.
func (s *Store) ServiceOrders(ctx context.Context) []ServiceOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ServiceOrder, 0, len(s.serviceOrders))
	for i := len(s.serviceOrders) - 1; i >= 0; i-- {
		out = append(out, s.serviceOrders[i])
	}
	return out
}
