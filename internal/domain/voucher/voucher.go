package voucher

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Voucher is a discount the backend accepted for a given subtotal. The
// discount is never computed locally.
type Voucher struct {
	Code           string
	VoucherID      string
	DiscountAmount decimal.Decimal
}

func (v Voucher) IsZero() bool {
	return v.Code == "" && v.VoucherID == "" && v.DiscountAmount.IsZero()
}

// Payable returns max(0, subtotal - discount).
func Payable(subtotal, discount decimal.Decimal) decimal.Decimal {
	p := subtotal.Sub(discount)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}
