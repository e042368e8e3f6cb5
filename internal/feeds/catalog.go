package feeds

import (
	"context"
	"fmt"
	"strconv"

	"github.com/metalldk/storefront/internal/cart"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/storefront"
)

type CatalogSource interface {
	Featured(ctx context.Context) ([]storefront.Product, error)
}

// Product is a catalog card.
type Product struct {
	storefront.Product
}

// LineItem turns the card into a cart line. Cards without an id get one
// derived from title and image when added to the cart.
func (p Product) LineItem(qty int) cart.LineItem {
	id := ""
	if p.ID > 0 {
		id = strconv.FormatInt(p.ID, 10)
	}
	return cart.LineItem{
		ID:    id,
		Title: p.Name,
		Price: p.Price,
		Image: p.Image,
		Qty:   qty,
	}
}

// CatalogFeed loads the featured products shown on the home page.
type CatalogFeed struct {
	src  CatalogSource
	logg *logger.Logger
}

func NewCatalogFeed(src CatalogSource, logg *logger.Logger) *CatalogFeed {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CatalogFeed{src: src, logg: logg}
}

func (f *CatalogFeed) Featured(ctx context.Context) ([]Product, error) {
	items, err := f.src.Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("load featured products: %w", err)
	}
	out := make([]Product, 0, len(items))
	for _, item := range items {
		out = append(out, Product{Product: item})
	}
	f.logg.Debug(f.logg.WithField(ctx, "count", len(out)), "feeds.featured.loaded")
	return out, nil
}

// FindProduct returns the card with the given id.
func FindProduct(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
