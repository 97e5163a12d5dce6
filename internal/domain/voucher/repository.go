package voucher

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domuser "example.com/storefront/internal/domain/user"
)

// Calculator asks the backend for the discount of code against subtotal.
type Calculator interface {
	Calculate(ctx context.Context, s domuser.Session, code string, subtotal decimal.Decimal) (Voucher, error)
}

// StateStore keeps the voucher currently applied to a user's checkout.
type StateStore interface {
	Get(ctx context.Context, userID string) (Voucher, error)
	Save(ctx context.Context, userID string, v Voucher, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}
