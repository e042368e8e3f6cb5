package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/metalldk/storefront/api/responses"
	"github.com/metalldk/storefront/api/validators"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/storefront"
)

const (
	CartCookieName = "cart_id"
	cartCookieTTL  = 90 * 24 * time.Hour
)

// Carts holds the anonymous server-side carts.
type Carts interface {
	Cart(ctx context.Context, cartID string) []storefront.CartItem
	AddToCart(ctx context.Context, cartID string, item storefront.CartItem) error
	SetCartQty(ctx context.Context, cartID, itemID string, qty int) error
	RemoveFromCart(ctx context.Context, cartID, itemID string)
	ClearCart(ctx context.Context, cartID string)
}

type cartQtyRequest struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// cartID returns the caller's cart id, issuing a fresh cookie when absent.
func cartID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CartCookieName); err == nil {
		if id := strings.TrimSpace(c.Value); id != "" {
			return id
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cartCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func CartFetch(carts Carts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines := carts.Cart(r.Context(), cartID(w, r))
		if lines == nil {
			lines = []storefront.CartItem{}
		}
		responses.WriteSuccess(w, lines)
	}
}

// CartAdd upserts a line; an existing line's quantity grows by the posted qty.
func CartAdd(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := cartID(w, r)
		var body storefront.CartItem
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Title = validators.SanitizeString(body.Title, 200)
		if err := carts.AddToCart(r.Context(), id, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, responses.StatusOK)
	}
}

func CartSetQty(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := cartID(w, r)
		var body cartQtyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := carts.SetCartQty(r.Context(), id, body.ID, body.Qty); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, responses.StatusOK)
	}
}

// CartDelete removes ?id= or, with ?all=1, the whole cart.
func CartDelete(carts Carts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := cartID(w, r)
		itemID := strings.TrimSpace(r.URL.Query().Get("id"))
		all := strings.TrimSpace(r.URL.Query().Get("all"))
		switch {
		case itemID != "":
			carts.RemoveFromCart(r.Context(), id, itemID)
		case all == "1":
			carts.ClearCart(r.Context(), id)
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "id or all=1 required"))
			return
		}
		responses.WriteSuccess(w, responses.StatusOK)
	}
}
