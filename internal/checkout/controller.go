package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/metalldk/storefront/internal/cart"
	"github.com/metalldk/storefront/pkg/enums"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/metrics"
	"github.com/metalldk/storefront/pkg/storefront"
)

const (
	msgEmptyCart     = "Cart is empty"
	msgPhoneRequired = "Enter a phone number"
	msgGuestSuccess  = "Thank you! A manager will call you within 5 minutes."
	msgMemberSuccess = "Order placed! A manager will contact you."
)

// Backend is the slice of the storefront API used by checkout.
type Backend interface {
	SessionActive(ctx context.Context) bool
	SubmitBatchOrder(ctx context.Context, order storefront.BatchOrder) error
	ClearServerCart(ctx context.Context) error
}

// Confirmation is the user's answer to the order summary dialog.
type Confirmation struct {
	Accepted bool
	Phone    string
}

// Confirmer shows the order summary and waits for the user.
type Confirmer interface {
	Confirm(ctx context.Context, summary Summary) (Confirmation, error)
}

// Notifier shows a blocking message.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Controller runs checkout attempts for one session. A second attempt made
// while one is in flight is dropped, never queued.
type Controller struct {
	store     *cart.Store
	backend   Backend
	confirmer Confirmer
	notifier  Notifier
	logg      *logger.Logger
	metrics   *metrics.CheckoutMetrics
	now       func() time.Time

	mu    sync.Mutex
	state enums.CheckoutState
	last  enums.CheckoutOutcome
}

// Deps groups the collaborators of a Controller.
type Deps struct {
	Store     *cart.Store
	Backend   Backend
	Confirmer Confirmer
	Notifier  Notifier
	Logger    *logger.Logger
	Metrics   *metrics.CheckoutMetrics
}

func NewController(deps Deps) (*Controller, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if deps.Backend == nil {
		return nil, fmt.Errorf("checkout backend required")
	}
	if deps.Confirmer == nil {
		return nil, fmt.Errorf("confirmer required")
	}
	if deps.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Controller{
		store:     deps.Store,
		backend:   deps.Backend,
		confirmer: deps.Confirmer,
		notifier:  deps.Notifier,
		logg:      logg,
		metrics:   deps.Metrics,
		now:       time.Now,
		state:     enums.CheckoutStateIdle,
	}, nil
}

// State reports submitting while an attempt is in flight. After an attempt it
// holds succeeded or failed when an order was sent, and idle otherwise.
func (c *Controller) State() enums.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastOutcome returns the outcome of the previous finished attempt.
func (c *Controller) LastOutcome() enums.CheckoutOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Submit places the cart as one batch order. The local cart is cleared only
// when the batch call succeeds. Clearing the server-held cart is best effort.
func (c *Controller) Submit(ctx context.Context) (enums.CheckoutOutcome, error) {
	items := c.store.Read(ctx)
	if len(items) == 0 {
		c.notifier.Notify(ctx, msgEmptyCart)
		return c.finishIdle(enums.CheckoutOutcomeEmptyCart), nil
	}

	if !c.acquire() {
		c.logg.Debug(ctx, "checkout.dropped")
		c.metrics.IncOutcome(enums.CheckoutOutcomeDropped.String())
		return enums.CheckoutOutcomeDropped, nil
	}

	authed := c.backend.SessionActive(ctx)
	ctx = c.logg.WithFields(ctx, map[string]any{"lines": len(items), "authenticated": authed})

	answer, err := c.confirmer.Confirm(ctx, Summarize(items, !authed))
	if err != nil {
		return c.finish(enums.CheckoutOutcomeCancelled), fmt.Errorf("confirm order: %w", err)
	}
	if !answer.Accepted {
		return c.finish(enums.CheckoutOutcomeCancelled), nil
	}

	phone := ""
	if !authed {
		phone = strings.TrimSpace(answer.Phone)
		if phone == "" {
			c.notifier.Notify(ctx, msgPhoneRequired)
			return c.finish(enums.CheckoutOutcomeCancelled), pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
		}
	}

	started := c.now()
	err = c.backend.SubmitBatchOrder(ctx, batchFrom(items, phone))
	c.metrics.ObserveSubmit(c.now().Sub(started))
	if err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "checkout.submit.failed")
		c.notifier.Notify(ctx, "Error: "+pkgerrors.UserMessage(err))
		return c.finish(enums.CheckoutOutcomeFailed), err
	}

	if err := c.backend.ClearServerCart(ctx); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "checkout.server_cart.clear_failed")
	}

	var clearErr error
	if err := c.store.Clear(ctx); err != nil {
		c.logg.Error(ctx, "checkout.local_cart.clear_failed", err)
		clearErr = fmt.Errorf("order placed but local cart not cleared: %w", err)
	}

	if authed {
		c.notifier.Notify(ctx, msgMemberSuccess)
	} else {
		c.notifier.Notify(ctx, msgGuestSuccess)
	}
	c.logg.Info(ctx, "checkout.submitted")
	return c.finish(enums.CheckoutOutcomeSubmitted), clearErr
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == enums.CheckoutStateSubmitting {
		return false
	}
	c.state = enums.CheckoutStateSubmitting
	return true
}

// finish ends the attempt that acquired the controller.
func (c *Controller) finish(outcome enums.CheckoutOutcome) enums.CheckoutOutcome {
	c.mu.Lock()
	c.state = outcome.State()
	c.last = outcome
	c.mu.Unlock()
	c.metrics.IncOutcome(outcome.String())
	return outcome
}

// finishIdle records an outcome reached without acquiring the controller. It
// leaves an in-flight attempt's state and last outcome alone.
func (c *Controller) finishIdle(outcome enums.CheckoutOutcome) enums.CheckoutOutcome {
	c.mu.Lock()
	if c.state != enums.CheckoutStateSubmitting {
		c.state = outcome.State()
		c.last = outcome
	}
	c.mu.Unlock()
	c.metrics.IncOutcome(outcome.String())
	return outcome
}
