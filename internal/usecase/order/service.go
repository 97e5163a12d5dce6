package order

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
)

// trackPageSize là số đơn mỗi lần quét khi tìm theo mã đơn.
const trackPageSize = 50

type Service struct {
	repo domorder.Repository
	log  zerolog.Logger
}

func NewService(repo domorder.Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List always filters by the session email; callers cannot list other
// buyers' orders.
func (s *Service) List(ctx context.Context, sess domuser.Session, f domorder.ListFilter) (*domorder.Page, error) {
	if !sess.Authenticated() {
		return nil, domuser.ErrNotLoggedIn
	}
	f.Email = sess.Email
	return s.repo.List(ctx, sess, f.Normalize())
}

func (s *Service) Get(ctx context.Context, sess domuser.Session, id string) (*domorder.Order, error) {
	if !sess.Authenticated() {
		return nil, domuser.ErrNotLoggedIn
	}
	if strings.TrimSpace(id) == "" {
		return nil, domorder.ErrOrderNotFound
	}
	return s.repo.GetByID(ctx, sess, id)
}

// Track finds the durable id of the order whose business id is orderID by
// scanning the buyer's order list page by page.
func (s *Service) Track(ctx context.Context, sess domuser.Session, orderID string) (string, error) {
	if !sess.Authenticated() {
		return "", domuser.ErrNotLoggedIn
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return "", domorder.ErrOrderNotFound
	}

	f := domorder.ListFilter{Email: sess.Email, Page: 1, Limit: trackPageSize}
	for {
		page, err := s.repo.List(ctx, sess, f)
		if err != nil {
			return "", err
		}
		for _, o := range page.Orders {
			if o.OrderID == orderID {
				return o.ID, nil
			}
		}
		if len(page.Orders) == 0 || f.Page >= page.TotalPages {
			break
		}
		f.Page++
	}

	s.log.Info().Str("user_id", sess.UserID).Str("order_id", orderID).Msg("order not found while tracking")
	return "", domorder.ErrOrderNotFound
}

func (s *Service) ConfirmReceived(ctx context.Context, sess domuser.Session, id string) error {
	o, err := s.Get(ctx, sess, id)
	if err != nil {
		return err
	}
	if !o.ShippingStatus.CanConfirmReceived() {
		return domorder.ErrConfirmNotAllowed
	}
	return s.repo.ConfirmReceived(ctx, sess, o.OrderID)
}

func (s *Service) Complain(ctx context.Context, sess domuser.Session, id string, c domorder.Complaint) error {
	if !sess.Authenticated() {
		return domuser.ErrNotLoggedIn
	}
	c.Description = strings.TrimSpace(c.Description)
	if !c.Reason.IsValid() || c.Description == "" {
		return domorder.ErrInvalidComplaint
	}

	o, err := s.Get(ctx, sess, id)
	if err != nil {
		return err
	}
	if !o.ShippingStatus.CanComplain() {
		return domorder.ErrComplaintNotAllowed
	}
	return s.repo.CreateComplaint(ctx, sess, o.OrderID, c)
}
