package checkout

import (
	"fmt"

	"github.com/metalldk/storefront/internal/cart"
	"github.com/metalldk/storefront/pkg/storefront"
)

// summaryLines is how many cart lines the confirmation dialog lists.
const summaryLines = 5

// Summary is what the confirmation dialog shows before an order is sent.
type Summary struct {
	Lines        []string
	More         bool
	Total        int64
	RequirePhone bool
}

// Summarize lists the first lines of c as "title — N pcs" with the total rounded to roubles.
func Summarize(c cart.Cart, requirePhone bool) Summary {
	s := Summary{RequirePhone: requirePhone}
	for i, item := range c {
		if i == summaryLines {
			s.More = true
			break
		}
		s.Lines = append(s.Lines, fmt.Sprintf("%s — %d pcs", item.Title, item.Qty))
	}
	s.Total = c.Total().Round(0).IntPart()
	return s
}

// batchFrom maps the cart onto the batch order payload.
func batchFrom(c cart.Cart, phone string) storefront.BatchOrder {
	order := storefront.BatchOrder{Items: make([]storefront.BatchItem, 0, len(c)), Phone: phone}
	for _, item := range c {
		qty := item.Qty
		if qty < 1 {
			qty = 1
		}
		price := item.Price
		if price < 0 {
			price = 0
		}
		order.Items = append(order.Items, storefront.BatchItem{
			ItemID: item.ID,
			Title:  item.Title,
			Qty:    qty,
			Price:  price,
		})
	}
	return order
}
