package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/teetribe/teetribe-backend/api/controllers/storefront"
	"github.com/teetribe/teetribe-backend/api/middleware"
	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

// StorefrontClient is the API surface the storefront pages need.
type StorefrontClient interface {
	storefront.Catalog
	storefront.Checkout
	storefront.Reviews
}

// NewStorefrontRouter serves one shopper session. Every storefront route
// reaches the cart through the store provisioned by CartScope.
func NewStorefrontRouter(logg *logger.Logger, store *cart.Store, client StorefrontClient, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	r.Handle("/metrics", metricsHandler(gatherer))

	r.Route("/storefront", func(r chi.Router) {
		r.Use(middleware.CartScope(store))

		r.Get("/cart", storefront.CartView(logg))
		r.Delete("/cart", storefront.CartClear(logg))
		r.Post("/cart/items", storefront.CartAddItem(logg))
		r.Patch("/cart/items/{id}/{size}", storefront.CartUpdateQuantity(logg))
		r.Delete("/cart/items/{id}/{size}", storefront.CartRemoveItem(logg))

		r.Get("/products", storefront.ProductList(client, logg))
		r.Post("/products/{slug}/add", storefront.ProductAdd(client, logg))
		r.Get("/products/{slug}/reviews", storefront.ProductReviews(client, client, logg))
		r.Post("/products/{slug}/reviews", storefront.ProductReviewAdd(client, client, logg))
		r.Delete("/reviews/{reviewId}", storefront.ReviewDelete(client, logg))
		r.Get("/categories", storefront.CategoryList(client, logg))

		r.Post("/checkout", storefront.CheckoutPlace(client, logg))
		r.Get("/orders", storefront.OrderHistory(client, logg))
	})

	return r
}
