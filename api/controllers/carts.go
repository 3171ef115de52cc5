package controllers

import (
	"net/http"

	"github.com/teetribe/teetribe-backend/api/middleware"
	"github.com/teetribe/teetribe-backend/api/responses"
	"github.com/teetribe/teetribe-backend/api/validators"
	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/internal/carts"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

// CartFetch returns the stored cart for the scoped user.
func CartFetch(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		dto, err := svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type saveCartRequest struct {
	Items []cart.Record `json:"items"`
}

// CartSave replaces the scoped user's cart with the sanitized request items.
func CartSave(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload saveCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Save(r.Context(), middleware.UserIDFromContext(r.Context()), payload.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartClear deletes the scoped user's cart; a missing cart answers 404.
func CartClear(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if err := svc.Clear(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Cart cleared"})
	}
}
