package cartview

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/metalldk/storefront/internal/cart"
	"github.com/metalldk/storefront/pkg/logger"
)

const cartTemplate = `{{define "cart"}}<div id="cartList">
{{- if .Empty}}
  <div class="cart-empty">
    <p class="cart-empty-text">Your cart is empty</p>
    <a href="{{.CatalogURL}}" class="cart-empty-btn">Go to catalog</a>
  </div>
{{- else}}
{{- range .Lines}}
  <div class="cart-item" data-id="{{.ID}}">
    <img src="{{.Image}}" alt="{{.Title}}" class="cart-item-image">
    <h3 class="cart-item-title">{{.Title}}</h3>
    <div class="cart-item-price">{{money .Price}} / pc</div>
    <input type="number" class="quantity-input" value="{{.Qty}}" min="1">
    <div class="cart-item-total">{{money .Total}}</div>
  </div>
{{- end}}
{{- end}}
</div>
<div id="cartSummary">
{{- if not .Empty}}
  <div class="summary-row"><span>Items ({{.Items}})</span><span>{{money .Total}}</span></div>
  {{- if .FreeShipping}}
  <div class="summary-row"><span>Delivery</span><span>Free</span></div>
  {{- end}}
  <div class="summary-row"><span>Total</span><span>{{money .Total}}</span></div>
{{- end}}
</div>
{{end}}`

var funcs = template.FuncMap{"money": Money}

// View renders the cart. Every render replaces the whole list markup.
type View struct {
	tmpl *template.Template
	logg *logger.Logger
}

func NewView(logg *logger.Logger) *View {
	if logg == nil {
		logg = logger.Nop()
	}
	return &View{
		tmpl: template.Must(template.New("cartview").Funcs(funcs).Parse(cartTemplate)),
		logg: logg,
	}
}

// Render writes the HTML of m.
func (v *View) Render(w io.Writer, m Model) error {
	return v.tmpl.ExecuteTemplate(w, "cart", m)
}

// RenderText writes a plain listing for terminals.
func RenderText(w io.Writer, m Model) error {
	var b strings.Builder
	if m.Empty {
		fmt.Fprintf(&b, "Your cart is empty. Browse the catalog: %s\n", m.CatalogURL)
		_, err := io.WriteString(w, b.String())
		return err
	}
	for i, line := range m.Lines {
		fmt.Fprintf(&b, "%d. %s\n   id %s | %s x %d = %s\n", i+1, line.Title, line.ID, Money(line.Price), line.Qty, Money(line.Total))
	}
	fmt.Fprintf(&b, "Items (%d): %s\n", m.Items, Money(m.Total))
	if m.FreeShipping {
		b.WriteString("Delivery: free\n")
	}
	fmt.Fprintf(&b, "Total: %s\n", Money(m.Total))
	_, err := io.WriteString(w, b.String())
	return err
}

// Bind re-renders into w after every cart change.
func (v *View) Bind(store *cart.Store, w io.Writer) {
	store.Subscribe(func(ctx context.Context, c cart.Cart) {
		if err := v.Render(w, Project(c)); err != nil {
			v.logg.Error(ctx, "cart.render.failed", err)
		}
	})
}
