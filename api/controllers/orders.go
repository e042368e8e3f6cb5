package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/metalldk/storefront/api/middleware"
	"github.com/metalldk/storefront/api/responses"
	"github.com/metalldk/storefront/api/validators"
	"github.com/metalldk/storefront/internal/devstore"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/storefront"
)

// Orders records cart checkouts and service requests.
type Orders interface {
	PlaceBatch(ctx context.Context, order storefront.BatchOrder, user *devstore.User) (*devstore.Batch, error)
	CreateServiceOrder(ctx context.Context, req storefront.ServiceOrder) (*devstore.ServiceOrder, error)
}

type serviceOrderRequest struct {
	Service string `json:"service" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email"`
}

// ItemOrderBatch places every cart line as one order. A signed-in caller's
// phone fills in a missing one.
func ItemOrderBatch(orders Orders, accounts Accounts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body storefront.BatchOrder
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var user *devstore.User
		if id := middleware.UserIDFromContext(r.Context()); id != uuid.Nil {
			// A session for a vanished account places the order as a guest.
			user, _ = accounts.UserByID(r.Context(), id)
		}

		batch, err := orders.PlaceBatch(r.Context(), body, user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"orders": len(batch.Orders),
				"total":  batch.Total.StringFixed(2),
			})
			logg.Info(ctx, "orders.batch.placed")
			logg.Debug(logg.WithField(ctx, "summary", batch.Summary()), "orders.batch.summary")
		}
		responses.WriteSuccess(w, responses.StatusOK)
	}
}

func ServiceOrderCreate(orders Orders, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body serviceOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := orders.CreateServiceOrder(r.Context(), storefront.ServiceOrder{
			Service: body.Service,
			Name:    body.Name,
			Phone:   body.Phone,
			Email:   body.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "service_order_id", order.ID), "orders.service.created")
		}
		responses.WriteSuccess(w, storefront.Receipt{ID: order.ID, Status: "ok"})
	}
}
