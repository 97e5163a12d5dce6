package voucher

import "errors"

var (
	ErrEmptyCode        = errors.New("voucher code is required")
	ErrVoucherRejected  = errors.New("voucher could not be applied")
	ErrNoVoucherApplied = errors.New("no voucher applied")
)
