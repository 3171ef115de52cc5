package storefront

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/teetribe/teetribe-backend/api/responses"
	"github.com/teetribe/teetribe-backend/api/validators"
	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/cartapi"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
	"github.com/teetribe/teetribe-backend/pkg/types"
)

// Checkout submits and lists orders through the API.
type Checkout interface {
	PlaceOrder(ctx context.Context, userID, idempotencyKey string, req cartapi.PlaceOrderRequest) (*cartapi.PlaceOrderResult, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}

type checkoutRequest struct {
	Contact       types.Contact  `json:"contact" validate:"required"`
	Shipping      types.Shipping `json:"shipping" validate:"required"`
	PaymentMethod string         `json:"payment_method"`
}

// CheckoutPlace orders the current cart, then clears it. The cart is only
// cleared once the API has accepted the order.
func CheckoutPlace(checkout Checkout, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checkout == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := store.Snapshot()
		if len(snapshot.Items) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty"))
			return
		}

		key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
		if key == "" {
			key = uuid.NewString()
		}

		result, err := checkout.PlaceOrder(r.Context(), store.UserID(), key, cartapi.PlaceOrderRequest{
			Items:         cart.Records(snapshot.Items),
			Total:         snapshot.Price,
			Contact:       payload.Contact.Trimmed(),
			Shipping:      payload.Shipping.Trimmed(),
			PaymentMethod: payload.PaymentMethod,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := store.ClearCart(r.Context()); err != nil && logg != nil {
			logg.WarnErr(logg.WithField(r.Context(), "order_id", result.OrderID), "checkout.clear_cart_failed", err)
		}
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "order_id", result.OrderID), "checkout.placed")
		}
		responses.WriteNotice(w, http.StatusCreated, result, result.Message)
	}
}

// OrderHistory lists the session's orders, newest first.
func OrderHistory(checkout Checkout, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checkout == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}

		list, err := checkout.ListOrders(r.Context(), store.UserID())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": list})
	}
}
