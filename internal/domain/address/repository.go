package address

import (
	"context"

	domuser "example.com/storefront/internal/domain/user"
)

// NewAddress is the form payload for a shipping address that does not exist yet.
type NewAddress struct {
	ReceiverName string
	Phone        string
	Address      string
	Ward         Place
	District     Place
	City         Place
	Type         Type
}

type Repository interface {
	GetBook(ctx context.Context, s domuser.Session) (Book, error)
	Create(ctx context.Context, s domuser.Session, in NewAddress) ([]ShippingAddress, error)
	SetDefault(ctx context.Context, s domuser.Session, addressID string) error
}

// GeographySource serves the GHN administrative tree one level at a time.
type GeographySource interface {
	Provinces(ctx context.Context) ([]Province, error)
	Districts(ctx context.Context, provinceID int) ([]District, error)
	Wards(ctx context.Context, districtID int) ([]Ward, error)
}
