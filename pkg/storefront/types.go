package storefront

import (
	"strings"

	"github.com/metalldk/storefront/pkg/types"
)

// Credentials is the body of POST /api/login. Exactly one of Email or Phone is set.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Registration is the body of POST /api/register.
type Registration struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of POST /api/profile.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Profile is the account returned by GET /api/me.
type Profile struct {
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// DisplayName falls back to the first/last name pair and then to a generic label.
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if full := strings.TrimSpace(p.FirstName + " " + p.LastName); full != "" {
		return full
	}
	return "User"
}

// Initials builds the avatar text: the upper-cased first letter of each word of the name.
func (p Profile) Initials() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return b.String()
}

// Product is one card of GET /api/featured.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"img"`
	Price    float64 `json:"price"`
	InStock  bool    `json:"in_stock"`
	TypeSlug string  `json:"type_slug,omitempty"`
	Size     string  `json:"size,omitempty"`
}

// NewsItem is one article of GET /api/news.
type NewsItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	ShortText   string     `json:"short_text"`
	FullText    string     `json:"full_text"`
	PublishedAt types.Date `json:"published_at"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// BatchItem is one cart line inside a batch order.
type BatchItem struct {
	ItemID string  `json:"item_id"`
	Title  string  `json:"title"`
	Qty    int     `json:"qty"`
	Price  float64 `json:"price"`
}

// BatchOrder is the body of POST /api/item-order/batch.
type BatchOrder struct {
	Items []BatchItem `json:"items"`
	Phone string      `json:"phone"`
}

// CartItem is one line of the server-held cart.
type CartItem struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Qty   int     `json:"qty"`
}

// ServiceOrder is the body of POST /api/orders, sent from the services page.
type ServiceOrder struct {
	Service string `json:"service"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
}

// Receipt acknowledges a created order.
type Receipt struct {
	ID     int64  `json:"id,omitempty"`
	Status string `json:"status"`
}
