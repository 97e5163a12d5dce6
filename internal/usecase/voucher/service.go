package voucher

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	domuser "example.com/storefront/internal/domain/user"
	domvoucher "example.com/storefront/internal/domain/voucher"
)

type Quote struct {
	Voucher  domvoucher.Voucher
	Subtotal decimal.Decimal
	Payable  decimal.Decimal
}

type Service struct {
	calc  domvoucher.Calculator
	store domvoucher.StateStore
	ttl   time.Duration
	log   zerolog.Logger
}

func NewService(calc domvoucher.Calculator, store domvoucher.StateStore, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{calc: calc, store: store, ttl: ttl, log: log}
}

// Apply asks the backend for the discount and stores it only on success, so
// a failed attempt leaves the previously applied voucher in place.
func (s *Service) Apply(ctx context.Context, sess domuser.Session, code string, subtotal decimal.Decimal) (*Quote, error) {
	if !sess.Authenticated() {
		return nil, domuser.ErrNotLoggedIn
	}
	code = domvoucher.NormalizeCode(code)
	if code == "" {
		return nil, domvoucher.ErrEmptyCode
	}

	v, err := s.calc.Calculate(ctx, sess, code, subtotal)
	if err != nil {
		s.log.Info().Err(err).Str("user_id", sess.UserID).Str("code", code).Msg("voucher rejected")
		return nil, err
	}
	v.Code = code
	if v.DiscountAmount.IsNegative() {
		v.DiscountAmount = decimal.Zero
	}

	if err := s.store.Save(ctx, sess.UserID, v, s.ttl); err != nil {
		return nil, err
	}
	return &Quote{
		Voucher:  v,
		Subtotal: subtotal,
		Payable:  domvoucher.Payable(subtotal, v.DiscountAmount),
	}, nil
}

// Current returns the applied voucher, or a zero Voucher when none is.
func (s *Service) Current(ctx context.Context, sess domuser.Session) (domvoucher.Voucher, error) {
	v, err := s.store.Get(ctx, sess.UserID)
	if errors.Is(err, domvoucher.ErrNoVoucherApplied) {
		return domvoucher.Voucher{}, nil
	}
	if err != nil {
		return domvoucher.Voucher{}, err
	}
	return v, nil
}

func (s *Service) Clear(ctx context.Context, sess domuser.Session) error {
	return s.store.Delete(ctx, sess.UserID)
}
