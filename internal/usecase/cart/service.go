package cart

import (
	"context"

	domcart "example.com/storefront/internal/domain/cart"
	domuser "example.com/storefront/internal/domain/user"
)

type CartRepository interface {
	ListLines(ctx context.Context, s domuser.Session) ([]domcart.Line, error)
}

type Service struct {
	cartRepo CartRepository
}

func NewService(cartRepo CartRepository) *Service {
	return &Service{cartRepo: cartRepo}
}

// GetSummary loads the backend cart and aggregates the orderable lines.
func (s *Service) GetSummary(ctx context.Context, sess domuser.Session) (domcart.Summary, error) {
	if !sess.Authenticated() {
		return domcart.Summary{}, domuser.ErrNotLoggedIn
	}
	lines, err := s.cartRepo.ListLines(ctx, sess)
	if err != nil {
		return domcart.Summary{}, err
	}
	return domcart.Aggregate(lines), nil
}
