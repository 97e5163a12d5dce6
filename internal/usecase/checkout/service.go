package checkout

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	domaddress "example.com/storefront/internal/domain/address"
	domcart "example.com/storefront/internal/domain/cart"
	domcheckout "example.com/storefront/internal/domain/checkout"
	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
	domvoucher "example.com/storefront/internal/domain/voucher"
)

type CartReader interface {
	ListLines(ctx context.Context, s domuser.Session) ([]domcart.Line, error)
}

type AddressBook interface {
	GetBook(ctx context.Context, s domuser.Session) (domaddress.Book, error)
}

type VoucherState interface {
	Current(ctx context.Context, s domuser.Session) (domvoucher.Voucher, error)
	Clear(ctx context.Context, s domuser.Session) error
}

type Service struct {
	carts      CartReader
	addresses  AddressBook
	vouchers   VoucherState
	dispatcher *Dispatcher
	log        zerolog.Logger
}

func NewService(carts CartReader, addresses AddressBook, vouchers VoucherState, dispatcher *Dispatcher, log zerolog.Logger) *Service {
	return &Service{
		carts:      carts,
		addresses:  addresses,
		vouchers:   vouchers,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Preview is everything the checkout page renders before submit.
type Preview struct {
	Summary   domcart.Summary
	Voucher   domvoucher.Voucher
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Payable   decimal.Decimal
	Addresses []domaddress.ShippingAddress
	Selected  *domaddress.ShippingAddress
}

type PlaceOrderInput struct {
	Method    string
	AddressID string
}

func (s *Service) Preview(ctx context.Context, sess domuser.Session, addressID string) (*Preview, error) {
	if !sess.Authenticated() {
		return nil, domuser.ErrNotLoggedIn
	}
	summary, book, v, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	p := &Preview{
		Summary:   summary,
		Voucher:   v,
		Subtotal:  summary.TotalPrice,
		Discount:  v.DiscountAmount,
		Payable:   domvoucher.Payable(summary.TotalPrice, v.DiscountAmount),
		Addresses: book.Addresses,
	}
	if a, ok := book.Select(addressID); ok {
		p.Selected = &a
	}
	return p, nil
}

// PlaceOrder loads the cart, address and applied voucher for the session
// and hands them to the dispatcher.
func (s *Service) PlaceOrder(ctx context.Context, sess domuser.Session, in PlaceOrderInput) (*domcheckout.Result, error) {
	if !sess.Authenticated() {
		return nil, domuser.ErrNotLoggedIn
	}
	method, err := domorder.ParsePaymentMethod(in.Method)
	if err != nil {
		return nil, err
	}

	summary, book, v, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	var addr *domaddress.ShippingAddress
	if a, ok := book.Select(in.AddressID); ok {
		addr = &a
	}

	result, err := s.dispatcher.Dispatch(ctx, BuildInput{
		Session: sess,
		Summary: summary,
		Address: addr,
		Voucher: v,
		Method:  method,
	})
	if err != nil {
		return nil, err
	}

	if !v.IsZero() {
		if err := s.vouchers.Clear(ctx, sess); err != nil {
			s.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("clear applied voucher failed")
		}
	}
	return result, nil
}

func (s *Service) Attempt(ctx context.Context, sess domuser.Session, attemptID string) ([]domcheckout.Attempt, error) {
	if !sess.Authenticated() {
		return nil, domuser.ErrNotLoggedIn
	}
	return s.dispatcher.History(ctx, sess, attemptID)
}

func (s *Service) load(ctx context.Context, sess domuser.Session) (domcart.Summary, domaddress.Book, domvoucher.Voucher, error) {
	lines, err := s.carts.ListLines(ctx, sess)
	if err != nil {
		return domcart.Summary{}, domaddress.Book{}, domvoucher.Voucher{}, err
	}
	book, err := s.addresses.GetBook(ctx, sess)
	if err != nil {
		return domcart.Summary{}, domaddress.Book{}, domvoucher.Voucher{}, err
	}
	v, err := s.vouchers.Current(ctx, sess)
	if err != nil {
		return domcart.Summary{}, domaddress.Book{}, domvoucher.Voucher{}, err
	}
	return domcart.Aggregate(lines), book, v, nil
}
