package storefront

import (
	"context"
	"net/http"
	"net/url"
)

// SubmitBatchOrder posts every cart line as one order.
func (c *Client) SubmitBatchOrder(ctx context.Context, order BatchOrder) error {
	if order.Items == nil {
		order.Items = []BatchItem{}
	}
	return c.do(ctx, http.MethodPost, "/api/item-order/batch", nil, order, nil)
}

// ClearServerCart empties the server-held cart mirror.
func (c *Client) ClearServerCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", url.Values{"all": {"1"}}, nil, nil)
}

// ServerCart returns the server-held cart mirror.
func (c *Client) ServerCart(ctx context.Context) ([]CartItem, error) {
	var out []CartItem
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []CartItem{}
	}
	return out, nil
}

// AddServerCartItem adds qty of an item to the server-held cart.
func (c *Client) AddServerCartItem(ctx context.Context, item CartItem) error {
	return c.do(ctx, http.MethodPost, "/api/cart", nil, item, nil)
}

// SubmitServiceRequest posts a request from the services page.
func (c *Client) SubmitServiceRequest(ctx context.Context, order ServiceOrder) (*Receipt, error) {
	var receipt Receipt
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, order, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
