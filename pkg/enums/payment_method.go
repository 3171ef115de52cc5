package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod describes how a shopper intends to settle an order.
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "COD"
	PaymentMethodCard PaymentMethod = "CARD"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodCard,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

var paymentMethodAliases = map[string]PaymentMethod{
	"CASH ON DELIVERY": PaymentMethodCOD,
	"CASH":             PaymentMethodCOD,
	"CREDIT CARD":      PaymentMethodCard,
}

// ParsePaymentMethod converts raw input into a PaymentMethod. Empty input
// defaults to cash on delivery; storefront labels such as "Cash on Delivery"
// are accepted.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return PaymentMethodCOD, nil
	}
	if alias, ok := paymentMethodAliases[value]; ok {
		return alias, nil
	}
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
