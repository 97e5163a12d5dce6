package checkout

import (
	"github.com/shopspring/decimal"

	domaddress "example.com/storefront/internal/domain/address"
	domcart "example.com/storefront/internal/domain/cart"
	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
	domvoucher "example.com/storefront/internal/domain/voucher"
)

const unnamedProduct = "Unnamed Product"

type BuildInput struct {
	Session domuser.Session
	Summary domcart.Summary
	Address *domaddress.ShippingAddress
	Voucher domvoucher.Voucher
	Method  domorder.PaymentMethod
}

// Amounts carries both sides of the discount so providers can pick the one
// their rules are written against.
type Amounts struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Payable  decimal.Decimal
}

// Build assembles the order request. OrderID stays empty: its format belongs
// to the payment provider.
func Build(in BuildInput) (domorder.Payload, Amounts, error) {
	if !in.Session.Authenticated() {
		return domorder.Payload{}, Amounts{}, domuser.ErrNotLoggedIn
	}
	if in.Address == nil || !in.Address.IsComplete() {
		return domorder.Payload{}, Amounts{}, domaddress.ErrIncompleteAddress
	}
	if in.Summary.IsEmpty() {
		return domorder.Payload{}, Amounts{}, domorder.ErrEmptyOrderItems
	}
	if !in.Method.IsValid() {
		return domorder.Payload{}, Amounts{}, domorder.ErrInvalidPayment
	}

	items := make([]domorder.Item, 0, len(in.Summary.Items))
	for _, line := range in.Summary.Items {
		name := line.Variant.ProductName
		if name == "" {
			name = unnamedProduct
		}
		items = append(items, domorder.Item{
			ProductVariantID: line.Variant.ID,
			ProductName:      name,
			Price:            line.Variant.Price,
			Quantity:         line.Quantity,
			Size:             line.Size,
		})
	}

	amounts := Amounts{
		Subtotal: in.Summary.TotalPrice,
		Discount: in.Voucher.DiscountAmount,
		Payable:  domvoucher.Payable(in.Summary.TotalPrice, in.Voucher.DiscountAmount),
	}

	payload := domorder.Payload{
		User: domorder.Receiver{
			Name:    in.Address.ReceiverName,
			Email:   in.Session.Email,
			Phone:   in.Address.Phone,
			Address: in.Address.FullAddress(),
		},
		Items:         items,
		TotalAmount:   amounts.Payable,
		PaymentMethod: in.Method,
		OrderInfo:     "Thanh toán qua " + string(in.Method),
		VoucherID:     in.Voucher.VoucherID,
	}
	return payload, amounts, nil
}
