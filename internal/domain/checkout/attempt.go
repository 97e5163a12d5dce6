package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	domorder "example.com/storefront/internal/domain/order"
)

var ErrAttemptNotFound = errors.New("checkout attempt not found")

// MessageLimit matches the message column width of checkout_attempts.
const MessageLimit = 512

// Attempt is one journal row: a dispatch attempt entering a phase.
type Attempt struct {
	ID            string
	UserID        string
	OrderID       string
	PaymentMethod domorder.PaymentMethod
	Phase         Phase
	Message       string
	At            time.Time
}

// StoredMessage is Message cut to at most MessageLimit runes.
func (a Attempt) StoredMessage() string {
	r := []rune(a.Message)
	if len(r) <= MessageLimit {
		return a.Message
	}
	return string(r[:MessageLimit])
}

type Journal interface {
	Record(ctx context.Context, a Attempt) error
	ListByAttempt(ctx context.Context, attemptID string) ([]Attempt, error)
}

type OrderPlaced struct {
	OrderID       string                 `json:"order_id"`
	UserID        string                 `json:"user_id"`
	Email         string                 `json:"email"`
	ReceiverName  string                 `json:"receiver_name"`
	PaymentMethod domorder.PaymentMethod `json:"payment_method"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	PaymentURL    string                 `json:"payment_url,omitempty"`
	PlacedAt      time.Time              `json:"placed_at"`
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlaced) error
}
