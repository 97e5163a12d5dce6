package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domaddress "example.com/storefront/internal/domain/address"
	domcart "example.com/storefront/internal/domain/cart"
	domcheckout "example.com/storefront/internal/domain/checkout"
	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
	domvoucher "example.com/storefront/internal/domain/voucher"
)

type stubCarts struct {
	lines []domcart.Line
	calls int
}

func (s *stubCarts) ListLines(ctx context.Context, sess domuser.Session) ([]domcart.Line, error) {
	s.calls++
	return s.lines, nil
}

type stubBook struct {
	book domaddress.Book
}

func (s *stubBook) GetBook(ctx context.Context, sess domuser.Session) (domaddress.Book, error) {
	return s.book, nil
}

type stubVouchers struct {
	current map[string]domvoucher.Voucher
}

func (s *stubVouchers) Current(ctx context.Context, sess domuser.Session) (domvoucher.Voucher, error) {
	return s.current[sess.UserID], nil
}

func (s *stubVouchers) Clear(ctx context.Context, sess domuser.Session) error {
	delete(s.current, sess.UserID)
	return nil
}

type serviceFixture struct {
	backend  *fakeBackend
	carts    *stubCarts
	vouchers *stubVouchers
	svc      *Service
}

func newServiceFixture() *serviceFixture {
	backend := &fakeBackend{}
	carts := &stubCarts{lines: []domcart.Line{
		{ID: "l1", Variant: &domcart.Variant{ID: "v1", ProductName: "Áo thun", Price: decimal.NewFromInt(400000)}, Quantity: 2},
		{ID: "l2", Variant: nil, Quantity: 1},
	}}
	company := homeAddress()
	company.ID = "a2"
	company.ReceiverName = "Trần Thị Bình"
	company.Type = domaddress.TypeCompany
	book := &stubBook{book: domaddress.Book{
		Addresses: []domaddress.ShippingAddress{*homeAddress(), *company},
		DefaultID: "a2",
	}}
	vouchers := &stubVouchers{current: map[string]domvoucher.Voucher{}}

	d := NewDispatcher(DispatcherDeps{
		Providers: []Provider{NewCODProvider(), NewMomoProvider(backend, BoundOnSubtotal)},
		Orders:    backend,
		Cart:      backend,
		Now:       func() time.Time { return time.UnixMilli(1_700_000_000_000) },
		Logger:    zerolog.Nop(),
	})
	return &serviceFixture{
		backend:  backend,
		carts:    carts,
		vouchers: vouchers,
		svc:      NewService(carts, book, vouchers, d, zerolog.Nop()),
	}
}

func TestPreview(t *testing.T) {
	f := newServiceFixture()
	f.vouchers.current["u1"] = domvoucher.Voucher{Code: "SALE", DiscountAmount: decimal.NewFromInt(100000)}

	p, err := f.svc.Preview(context.Background(), buyer, "")

	require.NoError(t, err)
	require.Len(t, p.Summary.Items, 1)
	require.Len(t, p.Summary.Unavailable, 1)
	require.Equal(t, int64(2), p.Summary.TotalQuantity)
	require.True(t, p.Subtotal.Equal(decimal.NewFromInt(800000)))
	require.True(t, p.Payable.Equal(decimal.NewFromInt(700000)))
	require.NotNil(t, p.Selected)
	require.Equal(t, "a2", p.Selected.ID)
	require.Len(t, p.Addresses, 2)
}

func TestPreview_RequestedAddress(t *testing.T) {
	f := newServiceFixture()

	p, err := f.svc.Preview(context.Background(), buyer, "a1")

	require.NoError(t, err)
	require.Equal(t, "a1", p.Selected.ID)
}

func TestPlaceOrder_NotLoggedInMakesNoCalls(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.PlaceOrder(context.Background(), domuser.Session{}, PlaceOrderInput{Method: "cod"})

	require.ErrorIs(t, err, domuser.ErrNotLoggedIn)
	require.Zero(t, f.carts.calls)
	require.Empty(t, f.backend.calls)
}

func TestPlaceOrder_InvalidMethod(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.PlaceOrder(context.Background(), buyer, PlaceOrderInput{Method: "paypal"})

	require.ErrorIs(t, err, domorder.ErrInvalidPayment)
	require.Zero(t, f.carts.calls)
}

func TestPlaceOrder_CODUsesDefaultAddressAndClearsVoucher(t *testing.T) {
	f := newServiceFixture()
	f.vouchers.current["u1"] = domvoucher.Voucher{Code: "SALE", VoucherID: "vc1", DiscountAmount: decimal.NewFromInt(100000)}

	res, err := f.svc.PlaceOrder(context.Background(), buyer, PlaceOrderInput{Method: "cod"})

	require.NoError(t, err)
	require.Equal(t, domcheckout.NextConfirmation, res.Next)
	require.Equal(t, "Trần Thị Bình", res.ReceiverName)
	require.Equal(t, []string{"POST /orders", "GET /cart/clear"}, f.backend.calls)
	require.Len(t, f.backend.created[0].Items, 1)
	require.True(t, f.backend.created[0].TotalAmount.Equal(decimal.NewFromInt(700000)))
	require.Equal(t, "vc1", f.backend.created[0].VoucherID)
	require.Empty(t, f.vouchers.current)
}

func TestPlaceOrder_FailureKeepsVoucher(t *testing.T) {
	f := newServiceFixture()
	f.vouchers.current["u1"] = domvoucher.Voucher{Code: "SALE", DiscountAmount: decimal.NewFromInt(100000)}
	f.backend.momoResp = &domorder.MomoResponse{ResultCode: intPtr(1001)}

	_, err := f.svc.PlaceOrder(context.Background(), buyer, PlaceOrderInput{Method: "momo", AddressID: "a1"})

	require.ErrorIs(t, err, domorder.ErrProviderRejected)
	require.Contains(t, f.vouchers.current, "u1")
	require.Empty(t, f.backend.created)
}
