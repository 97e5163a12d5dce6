package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domaddress "example.com/storefront/internal/domain/address"
	domcart "example.com/storefront/internal/domain/cart"
	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
	domvoucher "example.com/storefront/internal/domain/voucher"
)

var buyer = domuser.Session{UserID: "u1", Email: "an@example.com", Name: "An", Token: "tok"}

func homeAddress() *domaddress.ShippingAddress {
	return &domaddress.ShippingAddress{
		ID:           "a1",
		ReceiverName: "Nguyễn Văn An",
		Phone:        "0901234567",
		Address:      "12 Lý Thường Kiệt",
		Ward:         domaddress.Place{ID: "20308", Name: "Phường 7"},
		District:     domaddress.Place{ID: "1452", Name: "Quận 10"},
		City:         domaddress.Place{ID: "202", Name: "Hồ Chí Minh"},
		Type:         domaddress.TypeHome,
	}
}

func summaryOf(price int64, qty int64) domcart.Summary {
	return domcart.Aggregate([]domcart.Line{{
		ID:       "l1",
		Variant:  &domcart.Variant{ID: "v1", ProductName: "Áo thun", Price: decimal.NewFromInt(price)},
		Quantity: qty,
		Size:     "M",
	}})
}

func TestBuild_Success(t *testing.T) {
	payload, amounts, err := Build(BuildInput{
		Session: buyer,
		Summary: summaryOf(200000, 2),
		Address: homeAddress(),
		Voucher: domvoucher.Voucher{Code: "SALE", VoucherID: "vc1", DiscountAmount: decimal.NewFromInt(50000)},
		Method:  domorder.PaymentCOD,
	})

	require.NoError(t, err)
	require.True(t, amounts.Subtotal.Equal(decimal.NewFromInt(400000)))
	require.True(t, amounts.Payable.Equal(decimal.NewFromInt(350000)))
	require.True(t, payload.TotalAmount.Equal(decimal.NewFromInt(350000)))
	require.Equal(t, "", payload.OrderID)
	require.Equal(t, "", payload.PaymentURL)
	require.Equal(t, "Thanh toán qua COD", payload.OrderInfo)
	require.Equal(t, "vc1", payload.VoucherID)
	require.Equal(t, "Nguyễn Văn An", payload.User.Name)
	require.Equal(t, "an@example.com", payload.User.Email)
	require.Equal(t, "12 Lý Thường Kiệt, Quận 10, Phường 7, Hồ Chí Minh", payload.User.Address)
	require.Len(t, payload.Items, 1)
	require.Equal(t, "v1", payload.Items[0].ProductVariantID)
	require.Equal(t, int64(2), payload.Items[0].Quantity)
}

func TestBuild_UnnamedProduct(t *testing.T) {
	summary := domcart.Aggregate([]domcart.Line{{
		ID:       "l1",
		Variant:  &domcart.Variant{ID: "v1", Price: decimal.NewFromInt(1000)},
		Quantity: 1,
	}})

	payload, _, err := Build(BuildInput{Session: buyer, Summary: summary, Address: homeAddress(), Method: domorder.PaymentMomo})

	require.NoError(t, err)
	require.Equal(t, "Unnamed Product", payload.Items[0].ProductName)
}

func TestBuild_DiscountAboveSubtotal(t *testing.T) {
	_, amounts, err := Build(BuildInput{
		Session: buyer,
		Summary: summaryOf(500000, 1),
		Address: homeAddress(),
		Voucher: domvoucher.Voucher{DiscountAmount: decimal.NewFromInt(600000)},
		Method:  domorder.PaymentZaloPay,
	})

	require.NoError(t, err)
	require.True(t, amounts.Payable.IsZero())
}

func TestBuild_Rejections(t *testing.T) {
	incomplete := homeAddress()
	incomplete.Ward = domaddress.Place{}

	tests := []struct {
		name string
		in   BuildInput
		want error
	}{
		{
			name: "Not logged in",
			in:   BuildInput{Summary: summaryOf(1000, 1), Address: homeAddress(), Method: domorder.PaymentCOD},
			want: domuser.ErrNotLoggedIn,
		},
		{
			name: "Missing address",
			in:   BuildInput{Session: buyer, Summary: summaryOf(1000, 1), Method: domorder.PaymentCOD},
			want: domaddress.ErrIncompleteAddress,
		},
		{
			name: "Address without ward",
			in:   BuildInput{Session: buyer, Summary: summaryOf(1000, 1), Address: incomplete, Method: domorder.PaymentCOD},
			want: domaddress.ErrIncompleteAddress,
		},
		{
			name: "Only unavailable lines",
			in: BuildInput{
				Session: buyer,
				Summary: domcart.Aggregate([]domcart.Line{{ID: "l1", Quantity: 1}}),
				Address: homeAddress(),
				Method:  domorder.PaymentCOD,
			},
			want: domorder.ErrEmptyOrderItems,
		},
		{
			name: "Unknown method",
			in:   BuildInput{Session: buyer, Summary: summaryOf(1000, 1), Address: homeAddress(), Method: "VNPAY"},
			want: domorder.ErrInvalidPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build(tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
