package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
)

var (
	momoMinAmount = decimal.NewFromInt(1_000)
	momoMaxAmount = decimal.NewFromInt(50_000_000)

	// ZaloPay yêu cầu app_trans_id theo ngày giờ Việt Nam (GMT+7).
	vietnamTime = time.FixedZone("ICT", 7*60*60)
)

type ProviderResult struct {
	Success        bool
	ExternalURL    string
	FailureMessage string
}

// Provider is one payment method. External providers go through
// ProviderRequest and hand back a URL; the others skip straight to persisting.
type Provider interface {
	Method() domorder.PaymentMethod
	External() bool
	NewOrderID(now time.Time) string
	Precheck(a Amounts) error
	Initiate(ctx context.Context, s domuser.Session, p domorder.Payload, a Amounts) (ProviderResult, error)
}

// millisClock hands out epoch milliseconds that strictly increase, even when
// two orders are placed within the same millisecond.
type millisClock struct {
	mu   sync.Mutex
	last int64
}

func (c *millisClock) next(now time.Time) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ms := now.UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return ms
}

type codProvider struct {
	clock *millisClock
}

func NewCODProvider() Provider {
	return &codProvider{clock: &millisClock{}}
}

func (p *codProvider) Method() domorder.PaymentMethod { return domorder.PaymentCOD }
func (p *codProvider) External() bool                 { return false }

func (p *codProvider) NewOrderID(now time.Time) string {
	return fmt.Sprintf("COD_%d", p.clock.next(now))
}

func (p *codProvider) Precheck(a Amounts) error { return nil }

func (p *codProvider) Initiate(ctx context.Context, s domuser.Session, payload domorder.Payload, a Amounts) (ProviderResult, error) {
	return ProviderResult{Success: true}, nil
}

type BoundBasis string

const (
	BoundOnSubtotal BoundBasis = "subtotal"
	BoundOnPayable  BoundBasis = "payable"
)

type momoProvider struct {
	gateway domorder.PaymentGateway
	basis   BoundBasis
	clock   *millisClock
}

func NewMomoProvider(gateway domorder.PaymentGateway, basis BoundBasis) Provider {
	if basis != BoundOnPayable {
		basis = BoundOnSubtotal
	}
	return &momoProvider{gateway: gateway, basis: basis, clock: &millisClock{}}
}

func (p *momoProvider) Method() domorder.PaymentMethod { return domorder.PaymentMomo }
func (p *momoProvider) External() bool                 { return true }

func (p *momoProvider) NewOrderID(now time.Time) string {
	return fmt.Sprintf("MOMO_%d", p.clock.next(now))
}

// Precheck enforces MoMo's [1.000đ, 50.000.000đ] window before any request.
func (p *momoProvider) Precheck(a Amounts) error {
	amount := a.Subtotal
	if p.basis == BoundOnPayable {
		amount = a.Payable
	}
	if amount.LessThan(momoMinAmount) || amount.GreaterThan(momoMaxAmount) {
		return domorder.ErrAmountOutOfRange
	}
	return nil
}

func (p *momoProvider) Initiate(ctx context.Context, s domuser.Session, payload domorder.Payload, a Amounts) (ProviderResult, error) {
	resp, err := p.gateway.CreateMomo(ctx, s, domorder.MomoRequest{
		TotalAmount:  a.Payable.Round(0),
		OrderID:      payload.OrderID,
		OrderInfo:    payload.OrderInfo,
		ExtraData:    payload.ExtraData,
		OrderGroupID: payload.OrderGroupID,
	})
	if err != nil {
		return ProviderResult{}, err
	}
	if !resp.Succeeded() {
		msg := "Khởi tạo thanh toán MoMo thất bại"
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return ProviderResult{FailureMessage: msg}, nil
	}
	return ProviderResult{Success: true, ExternalURL: resp.PayURL}, nil
}

type zaloPayProvider struct {
	gateway domorder.PaymentGateway

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewZaloPayProvider(gateway domorder.PaymentGateway) Provider {
	return &zaloPayProvider{
		gateway: gateway,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *zaloPayProvider) Method() domorder.PaymentMethod { return domorder.PaymentZaloPay }
func (p *zaloPayProvider) External() bool                 { return true }

// NewOrderID returns "<YYMMDD>_<0..999999>"; ZaloPay only needs uniqueness
// within a day.
func (p *zaloPayProvider) NewOrderID(now time.Time) string {
	p.mu.Lock()
	n := p.rnd.Intn(1_000_000)
	p.mu.Unlock()
	return fmt.Sprintf("%s_%d", now.In(vietnamTime).Format("060102"), n)
}

func (p *zaloPayProvider) Precheck(a Amounts) error { return nil }

func (p *zaloPayProvider) Initiate(ctx context.Context, s domuser.Session, payload domorder.Payload, a Amounts) (ProviderResult, error) {
	resp, err := p.gateway.CreateZaloPay(ctx, s, domorder.ZaloPayRequest{
		OrderID:     payload.OrderID,
		OrderInfo:   payload.OrderInfo,
		TotalAmount: a.Payable,
	})
	if err != nil {
		return ProviderResult{}, err
	}
	if !resp.Succeeded() {
		msg := "Khởi tạo thanh toán ZaloPay thất bại"
		if resp != nil && resp.ReturnMessage != "" {
			msg = resp.ReturnMessage
		}
		return ProviderResult{FailureMessage: msg}, nil
	}
	return ProviderResult{Success: true, ExternalURL: resp.OrderURL}, nil
}
