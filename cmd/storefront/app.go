package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/metalldk/storefront/internal/auth"
	"github.com/metalldk/storefront/internal/cart"
	"github.com/metalldk/storefront/internal/cartview"
	"github.com/metalldk/storefront/internal/storage"
	"github.com/metalldk/storefront/pkg/config"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/metrics"
	"github.com/metalldk/storefront/pkg/storefront"
)

// app is one page session: the persisted client state, the API client and
// the terminal used for dialogs.
type app struct {
	cfg  *config.Config
	logg *logger.Logger
	kv   storage.Store
	api  *storefront.Client
	term *terminal
	out  io.Writer

	cart  *cart.Store
	auth  *auth.Controller
	badge *cartview.Badge

	reg      *prometheus.Registry
	checkout *metrics.CheckoutMetrics
}

func newApp(ctx context.Context, cfg *config.Config, logg *logger.Logger, kv storage.Store, in io.Reader, out io.Writer) (*app, error) {
	api, err := storefront.NewClient(cfg.API.BaseURL,
		storefront.WithTimeout(cfg.API.Timeout),
		storefront.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	if cfg.Storage.SessionCookies {
		restoreCookies(ctx, kv, api, logg)
	}

	cartStore, err := cart.NewStore(kv, cfg.Storage.CartKey, logg)
	if err != nil {
		return nil, err
	}
	authCtl, err := auth.NewController(api, kv, cfg.Storage.RememberKey, logg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	term := newTerminal(in, out)
	badge := cartview.NewBadge(cartStore.Read(ctx), term.badgeLine)
	cartStore.Subscribe(badge.Observe)

	return &app{
		cfg:   cfg,
		logg:  logg,
		kv:    kv,
		api:   api,
		term:  term,
		out:   out,
		cart:  cartStore,
		auth:  authCtl,
		badge: badge,

		reg:      reg,
		checkout: metrics.NewCheckoutMetrics(reg),
	}, nil
}

// close persists the backend cookies, flushes metrics and releases the storage driver.
func (a *app) close(ctx context.Context) error {
	var err error
	if a.cfg.Storage.SessionCookies {
		err = multierr.Append(err, saveCookies(ctx, a.kv, a.api))
	}
	if path := a.cfg.App.MetricsFile; path != "" {
		if werr := prometheus.WriteToTextfile(path, a.reg); werr != nil {
			err = multierr.Append(err, fmt.Errorf("write metrics: %w", werr))
		}
	}
	return multierr.Append(err, a.kv.Close())
}
