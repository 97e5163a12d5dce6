package address

import "errors"

var (
	ErrAddressNotFound    = errors.New("shipping address not found")
	ErrIncompleteAddress  = errors.New("please provide a valid shipping address")
	ErrInvalidAddressType = errors.New("invalid address type")
)
