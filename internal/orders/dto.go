package orders

import (
	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/types"
)

// PlaceOrderInput is the checkout payload accepted by the API.
type PlaceOrderInput struct {
	Items         []cart.Record  `json:"items"`
	Total         float64        `json:"total"`
	Contact       types.Contact  `json:"contact" validate:"required"`
	Shipping      types.Shipping `json:"shipping" validate:"required"`
	PaymentMethod string         `json:"payment_method"`
}

// PlaceOrderResult acknowledges a placed order.
type PlaceOrderResult struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

const placedMessage = "Order placed successfully!"
