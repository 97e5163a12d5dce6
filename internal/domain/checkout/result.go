package checkout

import (
	"strings"

	domorder "example.com/storefront/internal/domain/order"
)

type NextStep string

const (
	NextConfirmation    NextStep = "confirmation"
	NextExternalPayment NextStep = "external_payment"
)

// Result is what the client needs to leave the checkout page: either the
// confirmation navigation state or the gateway URL to open.
type Result struct {
	OrderID       string
	ReceiverName  string
	PaymentMethod domorder.PaymentMethod
	Next          NextStep
	PaymentURL    string
}

// Confirmation is the navigation state carried to the order-success page.
type Confirmation struct {
	OrderID      string
	ReceiverName string
}

func (c Confirmation) Greeting() string {
	name := strings.TrimSpace(c.ReceiverName)
	if name == "" {
		name = "bạn"
	}
	return "Chào " + name
}
