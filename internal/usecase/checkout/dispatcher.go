package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domcheckout "example.com/storefront/internal/domain/checkout"
	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
)

const genericPaymentError = "Có lỗi xảy ra khi thanh toán"

type OrderWriter interface {
	Create(ctx context.Context, s domuser.Session, p domorder.Payload) error
}

type CartClearer interface {
	Clear(ctx context.Context, s domuser.Session) error
}

// DispatchError is an aborted attempt. Message is the single line shown to
// the buyer; Err keeps the cause for errors.Is.
type DispatchError struct {
	AttemptID string
	OrderID   string
	Phase     domcheckout.Phase
	Message   string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("checkout aborted during %s: %v", e.Phase, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

type DispatcherDeps struct {
	Providers []Provider
	Orders    OrderWriter
	Cart      CartClearer
	Journal   domcheckout.Journal
	Publisher domcheckout.EventPublisher
	Now       func() time.Time
	Logger    zerolog.Logger
}

type Dispatcher struct {
	providers map[domorder.PaymentMethod]Provider
	orders    OrderWriter
	cart      CartClearer
	journal   domcheckout.Journal
	publisher domcheckout.EventPublisher
	now       func() time.Time
	log       zerolog.Logger
}

func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	providers := make(map[domorder.PaymentMethod]Provider, len(deps.Providers))
	for _, p := range deps.Providers {
		providers[p.Method()] = p
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		providers: providers,
		orders:    deps.Orders,
		cart:      deps.Cart,
		journal:   deps.Journal,
		publisher: deps.Publisher,
		now:       now,
		log:       deps.Logger,
	}
}

// attempt is the per-dispatch bookkeeping: phase machine plus journal rows.
type attempt struct {
	d       *Dispatcher
	ctx     context.Context
	id      string
	userID  string
	orderID string
	method  domorder.PaymentMethod
	machine *domcheckout.Machine
}

func (a *attempt) enter(phase domcheckout.Phase, msg string) {
	if err := a.machine.Advance(phase); err != nil {
		a.d.log.Error().
			Str("attempt_id", a.id).
			Str("from", a.machine.Current().String()).
			Str("to", phase.String()).
			Msg("illegal checkout transition")
		return
	}
	a.d.log.Info().
		Str("attempt_id", a.id).
		Str("order_id", a.orderID).
		Str("method", string(a.method)).
		Str("phase", phase.String()).
		Msg("checkout phase")

	if a.d.journal == nil {
		return
	}
	err := a.d.journal.Record(a.ctx, domcheckout.Attempt{
		ID:            a.id,
		UserID:        a.userID,
		OrderID:       a.orderID,
		PaymentMethod: a.method,
		Phase:         phase,
		Message:       msg,
		At:            a.d.now(),
	})
	if err != nil {
		a.d.log.Warn().Err(err).Str("attempt_id", a.id).Msg("journal write failed")
	}
}

func (a *attempt) abort(cause error, msg string) error {
	failedIn := a.machine.Current()
	a.d.log.Warn().Err(cause).Str("attempt_id", a.id).Str("phase", failedIn.String()).Msg("checkout aborted")
	a.enter(domcheckout.PhaseAborted, msg)
	return &DispatchError{
		AttemptID: a.id,
		OrderID:   a.orderID,
		Phase:     failedIn,
		Message:   msg,
		Err:       cause,
	}
}

// Dispatch builds the payload and runs the provider branch:
// provider request (external providers only), create order, clear cart, then
// confirmation or the external payment URL. The cart is never cleared unless
// the order was created.
func (d *Dispatcher) Dispatch(ctx context.Context, in BuildInput) (*domcheckout.Result, error) {
	a := &attempt{
		d:       d,
		ctx:     ctx,
		id:      uuid.NewString(),
		userID:  in.Session.UserID,
		method:  in.Method,
		machine: domcheckout.NewMachine(),
	}
	a.enter(domcheckout.PhaseBuilding, "")

	payload, amounts, err := Build(in)
	if err != nil {
		return nil, a.abort(err, err.Error())
	}
	provider, ok := d.providers[payload.PaymentMethod]
	if !ok {
		return nil, a.abort(domorder.ErrInvalidPayment, domorder.ErrInvalidPayment.Error())
	}
	payload.OrderID = provider.NewOrderID(d.now())
	a.orderID = payload.OrderID

	if err := provider.Precheck(amounts); err != nil {
		return nil, a.abort(err, err.Error())
	}

	if provider.External() {
		a.enter(domcheckout.PhaseProviderRequest, "")
		res, err := provider.Initiate(ctx, in.Session, payload, amounts)
		if err != nil {
			return nil, a.abort(err, userMessage(err))
		}
		if !res.Success {
			// Người mua chỉ thấy thông báo chung; lý do của cổng thanh toán nằm trong cause.
			cause := fmt.Errorf("%w: %s", domorder.ErrProviderRejected, res.FailureMessage)
			return nil, a.abort(cause, genericPaymentError)
		}
		payload.PaymentURL = res.ExternalURL
	}

	a.enter(domcheckout.PhasePersisting, "")
	if err := d.orders.Create(ctx, in.Session, payload); err != nil {
		return nil, a.abort(fmt.Errorf("create order: %w", err), userMessage(err))
	}
	if err := d.cart.Clear(ctx, in.Session); err != nil {
		return nil, a.abort(fmt.Errorf("clear cart: %w", err), userMessage(err))
	}

	result := &domcheckout.Result{
		OrderID:       payload.OrderID,
		ReceiverName:  in.Address.ReceiverName,
		PaymentMethod: payload.PaymentMethod,
	}
	if provider.External() {
		result.Next = domcheckout.NextExternalPayment
		result.PaymentURL = payload.PaymentURL
		a.enter(domcheckout.PhaseOpeningExternalPayment, payload.PaymentURL)
	} else {
		result.Next = domcheckout.NextConfirmation
		a.enter(domcheckout.PhaseNavigatingToConfirmation, "")
	}
	a.enter(domcheckout.PhaseTerminal, "")

	d.publishPlaced(ctx, in, payload)
	return result, nil
}

func (d *Dispatcher) publishPlaced(ctx context.Context, in BuildInput, p domorder.Payload) {
	if d.publisher == nil {
		return
	}
	err := d.publisher.PublishOrderPlaced(ctx, domcheckout.OrderPlaced{
		OrderID:       p.OrderID,
		UserID:        in.Session.UserID,
		Email:         in.Session.Email,
		ReceiverName:  p.User.Name,
		PaymentMethod: p.PaymentMethod,
		TotalAmount:   p.TotalAmount,
		PaymentURL:    p.PaymentURL,
		PlacedAt:      d.now(),
	})
	if err != nil {
		d.log.Warn().Err(err).Str("order_id", p.OrderID).Msg("publish order placed failed")
	}
}

// History returns the journal rows of one attempt, oldest first. Rows of
// other users are never returned.
func (d *Dispatcher) History(ctx context.Context, sess domuser.Session, attemptID string) ([]domcheckout.Attempt, error) {
	if d.journal == nil {
		return nil, domcheckout.ErrAttemptNotFound
	}
	rows, err := d.journal.ListByAttempt(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("list attempt %s: %w", attemptID, err)
	}
	out := rows[:0]
	for _, r := range rows {
		if r.UserID == sess.UserID {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, domcheckout.ErrAttemptNotFound
	}
	return out, nil
}

type serverMessager interface {
	ServerMessage() string
}

// userMessage prefers the message the backend put in the response body.
func userMessage(err error) string {
	var sm serverMessager
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}
	return genericPaymentError
}
