package storefront

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/metalldk/storefront/pkg/types"
)

// Featured lists the products shown in the home page carousel.
func (c *Client) Featured(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/featured", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// News lists published articles. A zero year lists all of them.
func (c *Client) News(ctx context.Context, year int) ([]NewsItem, error) {
	var query url.Values
	if year > 0 {
		query = url.Values{"year": {strconv.Itoa(year)}}
	}
	var out []NewsItem
	if err := c.do(ctx, http.MethodGet, "/api/news", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Social returns the links shown in the header and footer.
func (c *Client) Social(ctx context.Context) (types.SocialLinks, error) {
	var out types.SocialLinks
	if err := c.do(ctx, http.MethodGet, "/api/social", nil, nil, &out); err != nil {
		return types.SocialLinks{}, err
	}
	return out.Normalize(), nil
}
