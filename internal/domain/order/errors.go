package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrEmptyOrderItems     = errors.New("no items to checkout")
	ErrAmountOutOfRange    = errors.New("payment amount must be between 1.000đ and 50.000.000đ")
	ErrProviderRejected    = errors.New("payment provider rejected the order")
	ErrConfirmNotAllowed   = errors.New("order cannot be confirmed as received in its current state")
	ErrComplaintNotAllowed = errors.New("order does not accept complaints in its current state")
	ErrInvalidComplaint    = errors.New("complaint reason and description are required")
)
