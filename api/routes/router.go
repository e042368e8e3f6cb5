package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/metalldk/storefront/api/controllers"
	"github.com/metalldk/storefront/api/middleware"
	"github.com/metalldk/storefront/internal/devstore"
	"github.com/metalldk/storefront/pkg/config"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/metrics"
)

// NewRouter mounts the storefront REST contract on a chi router. A nil
// registry disables /metrics and request metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *devstore.Store,
	reg *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if reg != nil {
		httpMetrics = metrics.NewHTTPMetrics(reg)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.DevServer.CORSOrigins),
		middleware.Session(cfg.DevServer, logg),
	)

	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health(cfg))

		r.Post("/login", controllers.AuthLogin(store, cfg.DevServer, logg))
		r.Post("/register", controllers.AuthRegister(store, logg))
		r.Post("/logout", controllers.AuthLogout(logg))
		r.With(middleware.RequireSession(logg)).Get("/me", controllers.AuthMe(store, logg))
		r.With(middleware.RequireSession(logg)).Post("/profile", controllers.AuthProfileUpdate(store, logg))

		r.Get("/featured", controllers.FeaturedProducts(store))
		r.Get("/news", controllers.NewsList(store, logg))
		r.Get("/social", controllers.SocialLinks(store))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(store))
			r.Post("/", controllers.CartAdd(store, logg))
			r.Patch("/", controllers.CartSetQty(store, logg))
			r.Delete("/", controllers.CartDelete(store, logg))
		})

		r.Post("/item-order/batch", controllers.ItemOrderBatch(store, store, logg))
		r.Post("/orders", controllers.ServiceOrderCreate(store, logg))
	})

	return r
}
