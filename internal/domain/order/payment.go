package order

import (
	"context"

	"github.com/shopspring/decimal"

	domuser "example.com/storefront/internal/domain/user"
)

// MomoRequest là payload rút gọn gửi tới POST /orders/momo/create.
type MomoRequest struct {
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OrderID      string          `json:"orderId"`
	OrderInfo    string          `json:"orderInfo"`
	ExtraData    string          `json:"extraData"`
	OrderGroupID string          `json:"orderGroupId"`
}

type MomoResponse struct {
	ResultCode *int   `json:"resultCode"`
	PayURL     string `json:"payUrl"`
	Message    string `json:"message"`
}

// Succeeded is true only for an explicit resultCode of 0.
func (r *MomoResponse) Succeeded() bool {
	return r != nil && r.ResultCode != nil && *r.ResultCode == 0
}

type ZaloPayRequest struct {
	OrderID     string          `json:"orderId"`
	OrderInfo   string          `json:"orderInfo"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type ZaloPayResponse struct {
	ReturnCode    *int   `json:"return_code"`
	OrderURL      string `json:"order_url"`
	ReturnMessage string `json:"return_message"`
}

// Succeeded is true only for an explicit return_code of 1.
func (r *ZaloPayResponse) Succeeded() bool {
	return r != nil && r.ReturnCode != nil && *r.ReturnCode == 1
}

type PaymentGateway interface {
	CreateMomo(ctx context.Context, s domuser.Session, req MomoRequest) (*MomoResponse, error)
	CreateZaloPay(ctx context.Context, s domuser.Session, req ZaloPayRequest) (*ZaloPayResponse, error)
}
