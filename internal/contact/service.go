package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/metalldk/storefront/internal/auth"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/storefront"
)

type ServiceBackend interface {
	SubmitServiceRequest(ctx context.Context, order storefront.ServiceOrder) (*storefront.Receipt, error)
}

// ServiceRequest is the callback form of the services page.
type ServiceRequest struct {
	Service string `json:"service" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,ru_phone"`
	Email   string `json:"email" validate:"omitempty,storefront_email"`
}

type ServiceDesk struct {
	backend ServiceBackend
	logg    *logger.Logger
}

func NewServiceDesk(backend ServiceBackend, logg *logger.Logger) (*ServiceDesk, error) {
	if backend == nil {
		return nil, fmt.Errorf("service backend required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &ServiceDesk{backend: backend, logg: logg}, nil
}

// Submit masks the phone, validates the form and posts it as a service order.
func (d *ServiceDesk) Submit(ctx context.Context, req ServiceRequest) (*storefront.Receipt, error) {
	req.Service = strings.TrimSpace(req.Service)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = auth.MaskPhone(req.Phone)
	if err := auth.FormError(validate.Struct(req)); err != nil {
		return nil, err
	}

	receipt, err := d.backend.SubmitServiceRequest(ctx, storefront.ServiceOrder{
		Service: req.Service,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return nil, err
	}
	d.logg.Info(d.logg.WithFields(ctx, map[string]any{"service": req.Service, "order_id": receipt.ID}), "contact.service_request.created")
	return receipt, nil
}
