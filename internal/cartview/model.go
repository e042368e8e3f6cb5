package cartview

import (
	"github.com/metalldk/storefront/internal/cart"
	"github.com/shopspring/decimal"
)

// CatalogURL is the call-to-action target of the empty cart.
const CatalogURL = "/front/HTML/catalog.html"

// Line is one rendered cart row.
type Line struct {
	ID    string
	Title string
	Image string
	Price decimal.Decimal
	Qty   int
	Total decimal.Decimal
}

// Model is everything the cart page shows.
type Model struct {
	Lines        []Line
	Items        int
	Count        int
	Total        decimal.Decimal
	FreeShipping bool
	Empty        bool
	CatalogURL   string
}

// Project builds the view model. The grand total is the sum of the line totals.
func Project(c cart.Cart) Model {
	m := Model{
		Lines:      make([]Line, 0, len(c)),
		Total:      decimal.Zero,
		CatalogURL: CatalogURL,
		Empty:      len(c) == 0,
	}
	for _, item := range c {
		line := Line{
			ID:    item.ID,
			Title: item.Title,
			Image: item.Image,
			Price: decimal.NewFromFloat(item.Price),
			Qty:   item.Qty,
			Total: item.LineTotal(),
		}
		m.Lines = append(m.Lines, line)
		m.Total = m.Total.Add(line.Total)
		m.Count += item.Qty
	}
	m.Items = len(m.Lines)
	m.FreeShipping = !m.Empty
	return m
}

// Money formats an amount in roubles.
func Money(d decimal.Decimal) string {
	return d.Round(2).String() + " ₽"
}
