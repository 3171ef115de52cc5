package types

import "strings"

// Contact is how the shop reaches the shopper about an order.
type Contact struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

// Shipping is the delivery destination captured at checkout.
type Shipping struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Postal  string `json:"postal" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c Contact) Trimmed() Contact {
	return Contact{
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (s Shipping) Trimmed() Shipping {
	return Shipping{
		Name:    strings.TrimSpace(s.Name),
		Address: strings.TrimSpace(s.Address),
		City:    strings.TrimSpace(s.City),
		Postal:  strings.TrimSpace(s.Postal),
	}
}
