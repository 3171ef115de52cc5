package storefront

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teetribe/teetribe-backend/api/responses"
	"github.com/teetribe/teetribe-backend/api/validators"
	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

// storeFor resolves the session's cart store. A missing store is a wiring
// defect and answers 500 with an error log.
func storeFor(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*cart.Store, bool) {
	store, err := cart.FromContext(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}
	return store, true
}

func writeMutation(w http.ResponseWriter, store *cart.Store, notice cart.Notice) {
	responses.WriteNotice(w, http.StatusOK, store.Snapshot(), string(notice))
}

// CartView renders the cart page: lines plus derived totals.
func CartView(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartAddItem adds one unit of a loosely typed product record.
func CartAddItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}

		var rec cart.Record
		if err := validators.DecodeLooseJSON(r, &rec); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		notice, err := store.AddItem(r.Context(), rec)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeMutation(w, store, notice)
	}
}

type updateQuantityRequest struct {
	Quantity any `json:"quantity"`
}

// CartUpdateQuantity sets a line's quantity from a raw, coerced value.
func CartUpdateQuantity(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeLooseJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, size := lineKey(r)
		notice, err := store.UpdateQuantity(r.Context(), id, size, cart.CoerceQuantity(payload.Quantity))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeMutation(w, store, notice)
	}
}

// CartRemoveItem drops a line; removing an absent line is a no-op.
func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}

		id, size := lineKey(r)
		notice, err := store.RemoveItem(r.Context(), id, size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeMutation(w, store, notice)
	}
}

// CartClear empties the cart.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}

		notice, err := store.ClearCart(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeMutation(w, store, notice)
	}
}

func lineKey(r *http.Request) (string, string) {
	return chi.URLParam(r, "id"), chi.URLParam(r, "size")
}
