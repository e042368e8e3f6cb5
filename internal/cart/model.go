package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// itemNamespace scopes the name-based ids derived for catalog cards without an id.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://metall-dk.ru/cart-item"))

// LineItem is one product entry of the cart.
type LineItem struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Qty   int     `json:"qty"`
}

// UnmarshalJSON accepts numeric ids written by older catalog pages.
func (i *LineItem) UnmarshalJSON(data []byte) error {
	type plain LineItem
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = LineItem(raw.plain)
	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		i.ID = ""
	case id[0] == '"':
		if err := json.Unmarshal(id, &i.ID); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return err
		}
		i.ID = n.String()
	}
	return nil
}

// LineTotal is price times quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Cart is the ordered list of line items, persisted as a whole.
type Cart []LineItem

// Len returns the number of distinct lines.
func (c Cart) Len() int { return len(c) }

// Count is the sum of quantities, shown on the header badge.
func (c Cart) Count() int {
	total := 0
	for _, item := range c {
		total = addQty(total, item.Qty)
	}
	return total
}

// Total is the sum of line totals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Find returns the index of the line with id, or -1.
func (c Cart) Find(id string) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// DeriveItemID builds a stable id from title and image for cards that lack one.
func DeriveItemID(title, image string) string {
	key := strings.TrimSpace(title) + "|" + strings.TrimSpace(image)
	return uuid.NewSHA1(itemNamespace, []byte(key)).String()
}

func normalize(item LineItem) LineItem {
	item.ID = strings.TrimSpace(item.ID)
	item.Title = strings.TrimSpace(item.Title)
	item.Image = strings.TrimSpace(item.Image)
	if item.ID == "" {
		item.ID = DeriveItemID(item.Title, item.Image)
	}
	if item.Price < 0 {
		item.Price = 0
	}
	item.Qty = clampQty(item.Qty)
	return item
}

func clampQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// addQty sums two non-negative quantities, saturating at math.MaxInt.
func addQty(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
