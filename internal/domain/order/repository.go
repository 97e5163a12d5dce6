package order

import (
	"context"

	domuser "example.com/storefront/internal/domain/user"
)

type Repository interface {
	Create(ctx context.Context, s domuser.Session, p Payload) error
	List(ctx context.Context, s domuser.Session, f ListFilter) (*Page, error)
	GetByID(ctx context.Context, s domuser.Session, id string) (*Order, error)
	ConfirmReceived(ctx context.Context, s domuser.Session, orderID string) error
	CreateComplaint(ctx context.Context, s domuser.Session, orderID string, c Complaint) error
}
