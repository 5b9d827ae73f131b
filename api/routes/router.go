package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/internal/auth"
	"github.com/angelmondragon/storefront/internal/catalog"
	checkoutsvc "github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/sessions"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/redis"
)

// NewRouter wires every storefront endpoint. redisClient may be nil, in which case
// idempotency replay and auth rate limiting are skipped.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	storeMetrics *metrics.StorefrontMetrics,
	visitors *sessions.Registry,
	menu catalog.Provider,
	authService auth.Service,
	checkoutService checkoutsvc.Service,
	orderHistory orders.History,
) http.Handler {
	var (
		pinger    redis.Pinger
		idemStore redis.IdempotencyStore
		rateStore middleware.RateLimitStore
	)
	if redisClient != nil {
		pinger, idemStore, rateStore = redisClient, redisClient, redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "method not allowed").WithDetails(map[string]any{"method": req.Method}))
	})

	loginPolicy := middleware.LoginRateLimitPolicy(cfg.AuthRateLimit)
	signupPolicy := middleware.SignupRateLimitPolicy(cfg.AuthRateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, pinger, logg))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.Menu(menu, logg))
			r.Get("/popular", controllers.MenuPopular(menu, logg))
			r.Get("/{category}", controllers.MenuCategory(menu, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(signupPolicy, rateStore, logg)).Post("/signup", controllers.AuthSignup(authService, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		})

		r.Get("/orders/recent", controllers.RecentOrders(orderHistory, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(visitors, logg))
			idempotent := middleware.Idempotency(idemStore, logg)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(logg))
				r.Delete("/", controllers.ClearCart(storeMetrics, logg))
				r.With(idempotent).Post("/items", controllers.AddCartItem(menu, storeMetrics, logg))
				r.Patch("/items/{lineId}", controllers.UpdateCartItem(storeMetrics, logg))
				r.Delete("/items/{lineId}", controllers.RemoveCartItem(storeMetrics, logg))
			})

			r.Route("/customization", func(r chi.Router) {
				r.Get("/", controllers.GetCustomization(logg))
				r.Post("/", controllers.SelectItem(menu, logg))
				r.Delete("/", controllers.CancelCustomization(logg))
				r.Put("/size", controllers.SetCustomizationSize(logg))
				r.Put("/quantity", controllers.SetCustomizationQuantity(logg))
				r.Put("/instructions", controllers.SetCustomizationInstructions(logg))
				r.Post("/addons/{name}/toggle", controllers.ToggleCustomizationAddon(logg))
				r.With(idempotent).Post("/commit", controllers.CommitCustomization(storeMetrics, logg))
			})

			r.Get("/checkout/summary", controllers.CheckoutSummary(checkoutService, logg))
			r.With(idempotent).Post("/checkout", controllers.Checkout(checkoutService, logg))
		})
	})

	return r
}
