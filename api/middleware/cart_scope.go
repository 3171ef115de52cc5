package middleware

import (
	"net/http"

	"github.com/teetribe/teetribe-backend/internal/cart"
)

// CartScope provisions the session's cart store into every request so
// storefront handlers can reach it through cart.FromContext.
func CartScope(store *cart.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(cart.WithStore(r.Context(), store)))
		})
	}
}
