package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	domaddress "example.com/storefront/internal/domain/address"
	domcheckout "example.com/storefront/internal/domain/checkout"
	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
	domvoucher "example.com/storefront/internal/domain/voucher"
	"example.com/storefront/internal/infra/backend"
	addressuc "example.com/storefront/internal/usecase/address"
	cartuc "example.com/storefront/internal/usecase/cart"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	orderuc "example.com/storefront/internal/usecase/order"
	voucheruc "example.com/storefront/internal/usecase/voucher"
)

// SessionParser turns a bearer token into the buyer's session.
type SessionParser interface {
	ParseSession(token string) (domuser.Session, error)
}

// ReadinessCheck reports whether one dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type API struct {
	cartSvc     *cartuc.Service
	voucherSvc  *voucheruc.Service
	checkoutSvc *checkoutuc.Service
	orderSvc    *orderuc.Service
	addressSvc  *addressuc.Service
	resolver    *addressuc.Resolver
	sessions    SessionParser
	readiness   map[string]ReadinessCheck
	validator   *validator.Validate
	log         zerolog.Logger
}

type Dependencies struct {
	CartService     *cartuc.Service
	VoucherService  *voucheruc.Service
	CheckoutService *checkoutuc.Service
	OrderService    *orderuc.Service
	AddressService  *addressuc.Service
	Resolver        *addressuc.Resolver
	Sessions        SessionParser
	Readiness       map[string]ReadinessCheck
	Logger          zerolog.Logger
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	return &API{
		cartSvc:     deps.CartService,
		voucherSvc:  deps.VoucherService,
		checkoutSvc: deps.CheckoutService,
		orderSvc:    deps.OrderService,
		addressSvc:  deps.AddressService,
		resolver:    deps.Resolver,
		sessions:    deps.Sessions,
		readiness:   deps.Readiness,
		validator:   validate,
		log:         deps.Logger,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggerMiddleware(a.log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", a.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/addresses/resolve", a.handleResolveAddress)

		r.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)

			pr.Get("/me/cart", a.handleGetCart)

			pr.Route("/me/checkout", func(cr chi.Router) {
				cr.Get("/", a.handleCheckoutPreview)
				cr.Post("/", a.handlePlaceOrder)
				cr.Post("/voucher", a.handleApplyVoucher)
				cr.Delete("/voucher", a.handleRemoveVoucher)
				cr.Get("/confirmation", a.handleConfirmation)
				cr.Get("/attempts/{attemptId}", a.handleGetAttempt)
			})

			pr.Route("/me/orders", func(or chi.Router) {
				or.Get("/", a.handleListOrders)
				or.Get("/track/{orderId}", a.handleTrackOrder)
				or.Get("/{id}", a.handleGetOrder)
				or.Post("/{id}/confirm-received", a.handleConfirmReceived)
				or.Post("/{id}/complaint", a.handleComplain)
			})

			pr.Route("/me/addresses", func(ar chi.Router) {
				ar.Get("/", a.handleListAddresses)
				ar.Post("/", a.handleAddAddress)
			})
		})
	})

	return r
}

func (a *API) handleReady(w http.ResponseWriter, r *http.Request) {
	failed := map[string]string{}
	for name, check := range a.readiness {
		if err := check(r.Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "not ready", Details: failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func handleDomainError(w http.ResponseWriter, err error) {
	var dispatchErr *checkoutuc.DispatchError
	if errors.As(err, &dispatchErr) {
		switch {
		case errors.Is(err, domorder.ErrProviderRejected):
			respondDispatch(w, http.StatusPaymentRequired, dispatchErr)
		case isValidation(err):
			respondDispatch(w, http.StatusUnprocessableEntity, dispatchErr)
		default:
			respondDispatch(w, http.StatusBadGateway, dispatchErr)
		}
		return
	}

	var apiErr *backend.APIError
	switch {
	case isValidation(err):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domuser.ErrNotLoggedIn):
		respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, domaddress.ErrAddressNotFound),
		errors.Is(err, domcheckout.ErrAttemptNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domorder.ErrConfirmNotAllowed),
		errors.Is(err, domorder.ErrComplaintNotAllowed):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domvoucher.ErrVoucherRejected):
		// Lỗi voucher trả về message của backend
		msg := err.Error()
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		respondMessage(w, http.StatusUnprocessableEntity, msg)
	case errors.As(err, &apiErr):
		respondError(w, http.StatusBadGateway, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}

func isValidation(err error) bool {
	return errors.Is(err, domorder.ErrEmptyOrderItems) ||
		errors.Is(err, domorder.ErrInvalidPayment) ||
		errors.Is(err, domorder.ErrAmountOutOfRange) ||
		errors.Is(err, domorder.ErrInvalidComplaint) ||
		errors.Is(err, domaddress.ErrIncompleteAddress) ||
		errors.Is(err, domaddress.ErrInvalidAddressType) ||
		errors.Is(err, domvoucher.ErrEmptyCode)
}

type dispatchErrorResponse struct {
	Error     string            `json:"error"`
	AttemptID string            `json:"attempt_id"`
	OrderID   string            `json:"order_id,omitempty"`
	Phase     domcheckout.Phase `json:"phase"`
}

func respondDispatch(w http.ResponseWriter, status int, e *checkoutuc.DispatchError) {
	writeJSON(w, status, dispatchErrorResponse{
		Error:     e.Message,
		AttemptID: e.AttemptID,
		OrderID:   e.OrderID,
		Phase:     e.Phase,
	})
}
