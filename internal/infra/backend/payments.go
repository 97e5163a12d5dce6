package backend

import (
	"context"
	"net/http"

	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
)

type PaymentGateway struct {
	c *Client
}

func NewPaymentGateway(c *Client) *PaymentGateway {
	return &PaymentGateway{c: c}
}

// CreateMomo returns a nil response when the backend answers 2xx with an
// empty body; callers treat that as a failed initiation.
func (g *PaymentGateway) CreateMomo(ctx context.Context, s domuser.Session, req domorder.MomoRequest) (*domorder.MomoResponse, error) {
	var resp *domorder.MomoResponse
	if err := g.c.do(ctx, s, http.MethodPost, "/orders/momo/create", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (g *PaymentGateway) CreateZaloPay(ctx context.Context, s domuser.Session, req domorder.ZaloPayRequest) (*domorder.ZaloPayResponse, error) {
	var resp *domorder.ZaloPayResponse
	if err := g.c.do(ctx, s, http.MethodPost, "/orders/zalopay/create", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
