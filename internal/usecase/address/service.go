package address

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	domaddress "example.com/storefront/internal/domain/address"
	domuser "example.com/storefront/internal/domain/user"
)

type Service struct {
	repo domaddress.Repository
	log  zerolog.Logger
}

func NewService(repo domaddress.Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Book(ctx context.Context, sess domuser.Session) (domaddress.Book, error) {
	if !sess.Authenticated() {
		return domaddress.Book{}, domuser.ErrNotLoggedIn
	}
	return s.repo.GetBook(ctx, sess)
}

// Add creates the address and makes it the default when asked to, or when
// the user has no default yet.
func (s *Service) Add(ctx context.Context, sess domuser.Session, in domaddress.NewAddress, setDefault bool) (domaddress.ShippingAddress, error) {
	if !sess.Authenticated() {
		return domaddress.ShippingAddress{}, domuser.ErrNotLoggedIn
	}
	if in.Type == "" {
		in.Type = domaddress.TypeHome
	}
	if !in.Type.IsValid() {
		return domaddress.ShippingAddress{}, domaddress.ErrInvalidAddressType
	}
	candidate := domaddress.ShippingAddress{
		Address:  in.Address,
		Ward:     in.Ward,
		District: in.District,
		City:     in.City,
	}
	if strings.TrimSpace(in.ReceiverName) == "" || strings.TrimSpace(in.Phone) == "" || !candidate.IsComplete() {
		return domaddress.ShippingAddress{}, domaddress.ErrIncompleteAddress
	}

	book, err := s.repo.GetBook(ctx, sess)
	if err != nil {
		return domaddress.ShippingAddress{}, err
	}

	addresses, err := s.repo.Create(ctx, sess, in)
	if err != nil {
		return domaddress.ShippingAddress{}, err
	}
	if len(addresses) == 0 {
		return domaddress.ShippingAddress{}, domaddress.ErrAddressNotFound
	}
	created := addresses[len(addresses)-1]

	if (setDefault || !book.HasDefault()) && created.ID != "" {
		if err := s.repo.SetDefault(ctx, sess, created.ID); err != nil {
			return domaddress.ShippingAddress{}, err
		}
		created.IsDefault = true
		s.log.Debug().Str("user_id", sess.UserID).Str("address_id", created.ID).Msg("default address changed")
	}
	return created, nil
}
