package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teetribe/teetribe-backend/api/controllers"
	"github.com/teetribe/teetribe-backend/api/middleware"
	"github.com/teetribe/teetribe-backend/internal/carts"
	"github.com/teetribe/teetribe-backend/internal/orders"
	"github.com/teetribe/teetribe-backend/internal/products"
	"github.com/teetribe/teetribe-backend/internal/reviews"
	"github.com/teetribe/teetribe-backend/pkg/config"
	"github.com/teetribe/teetribe-backend/pkg/logger"
	"github.com/teetribe/teetribe-backend/pkg/redis"
)

// NewRouter builds the API: remote carts, the catalog, reviews and orders.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	cartService carts.Service,
	productService products.Service,
	orderService orders.Service,
	reviewService reviews.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	deps := map[string]controllers.Pinger{"db": dbP}
	if redisClient != nil {
		deps["redis"] = redisClient
		writePolicy := middleware.NewRateLimitPolicy("writes", cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitWrites)
		r.Use(middleware.WriteRateLimit(writePolicy, redisClient, logg))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})
	r.Handle("/metrics", metricsHandler(gatherer))

	r.Route("/cart/{userId}", func(r chi.Router) {
		r.Use(middleware.UserScope(logg))
		r.Get("/", controllers.CartFetch(cartService, logg))
		r.Post("/", controllers.CartSave(cartService, logg))
		r.Delete("/", controllers.CartClear(cartService, logg))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(productService, logg))
		r.Get("/slug/{slug}", controllers.ProductBySlug(productService, logg))
	})
	r.Get("/categories", controllers.CategoryList(productService, logg))

	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", controllers.ReviewCreate(reviewService, logg))
		r.Get("/{productId}", controllers.ReviewList(reviewService, logg))
		r.Delete("/{reviewId}", controllers.ReviewDelete(reviewService, logg))
	})

	r.Route("/orders/{userId}", func(r chi.Router) {
		r.Use(middleware.UserScope(logg))
		r.Get("/", controllers.OrderList(orderService, logg))
		if redisClient != nil {
			r.With(middleware.Idempotency(redisClient, logg)).Post("/", controllers.OrderPlace(orderService, logg))
		} else {
			r.Post("/", controllers.OrderPlace(orderService, logg))
		}
	})

	return r
}

func metricsHandler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
