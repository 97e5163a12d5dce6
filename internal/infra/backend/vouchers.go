package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	domuser "example.com/storefront/internal/domain/user"
	domvoucher "example.com/storefront/internal/domain/voucher"
)

type VoucherCalculator struct {
	c *Client
}

func NewVoucherCalculator(c *Client) *VoucherCalculator {
	return &VoucherCalculator{c: c}
}

type applyVoucherRequest struct {
	UserID     string          `json:"userId"`
	Code       string          `json:"code"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
}

type applyVoucherResponse struct {
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	VoucherID      string          `json:"voucherId"`
}

// Calculate maps any 4xx answer to ErrVoucherRejected while keeping the
// backend's message reachable through errors.As.
func (v *VoucherCalculator) Calculate(ctx context.Context, s domuser.Session, code string, subtotal decimal.Decimal) (domvoucher.Voucher, error) {
	var resp applyVoucherResponse
	err := v.c.do(ctx, s, http.MethodPost, "/vouchers/apply", nil, applyVoucherRequest{
		UserID:     s.UserID,
		Code:       code,
		OrderTotal: subtotal,
	}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return domvoucher.Voucher{}, fmt.Errorf("%w: %w", domvoucher.ErrVoucherRejected, err)
		}
		return domvoucher.Voucher{}, err
	}
	return domvoucher.Voucher{
		Code:           code,
		VoucherID:      resp.VoucherID,
		DiscountAmount: resp.DiscountAmount,
	}, nil
}
