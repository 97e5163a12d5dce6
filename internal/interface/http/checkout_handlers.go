package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domaddress "example.com/storefront/internal/domain/address"
	domcheckout "example.com/storefront/internal/domain/checkout"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	voucheruc "example.com/storefront/internal/usecase/voucher"
)

type applyVoucherRequest struct {
	Code string `json:"code" validate:"required"`
}

type placeOrderRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
	AddressID     string `json:"address_id"`
}

func (a *API) handleCheckoutPreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	preview, err := a.checkoutSvc.Preview(r.Context(), sess, r.URL.Query().Get("address_id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapPreview(preview))
}

func (a *API) handleApplyVoucher(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req applyVoucherRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	// Giảm giá luôn tính trên tổng tiền giỏ hàng hiện tại.
	summary, err := a.cartSvc.GetSummary(r.Context(), sess)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	quote, err := a.voucherSvc.Apply(r.Context(), sess, req.Code, summary.TotalPrice)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapQuote(quote))
}

func (a *API) handleRemoveVoucher(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	if err := a.voucherSvc.Clear(r.Context(), sess); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req placeOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.checkoutSvc.PlaceOrder(r.Context(), sess, checkoutuc.PlaceOrderInput{
		Method:    req.PaymentMethod,
		AddressID: req.AddressID,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapResult(result))
}

func (a *API) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	if _, ok := getSession(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	q := r.URL.Query()
	c := domcheckout.Confirmation{
		OrderID:      q.Get("order_id"),
		ReceiverName: q.Get("receiver_name"),
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order_id": c.OrderID,
		"greeting": c.Greeting(),
	})
}

func (a *API) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	rows, err := a.checkoutSvc.Attempt(r.Context(), sess, chi.URLParam(r, "attemptId"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	phases := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		phases = append(phases, map[string]any{
			"phase":   row.Phase,
			"message": row.Message,
			"at":      row.At,
		})
	}
	last := rows[len(rows)-1]
	writeJSON(w, http.StatusOK, map[string]any{
		"attempt_id":     last.ID,
		"order_id":       last.OrderID,
		"payment_method": last.PaymentMethod,
		"phase":          last.Phase,
		"history":        phases,
	})
}

func mapAddress(addr domaddress.ShippingAddress) map[string]any {
	return map[string]any{
		"id":            addr.ID,
		"receiver_name": addr.ReceiverName,
		"phone":         addr.Phone,
		"address":       addr.Address,
		"ward":          map[string]string{"id": addr.Ward.ID, "name": addr.Ward.Name},
		"district":      map[string]string{"id": addr.District.ID, "name": addr.District.Name},
		"city":          map[string]string{"id": addr.City.ID, "name": addr.City.Name},
		"type":          addr.Type,
		"is_default":    addr.IsDefault,
		"full_address":  addr.FullAddress(),
	}
}

func mapPreview(p *checkoutuc.Preview) map[string]any {
	out := mapSummary(p.Summary)
	out["subtotal"] = p.Subtotal
	out["discount"] = p.Discount
	out["payable"] = p.Payable
	if !p.Voucher.IsZero() {
		out["voucher"] = map[string]any{
			"code":            p.Voucher.Code,
			"voucher_id":      p.Voucher.VoucherID,
			"discount_amount": p.Voucher.DiscountAmount,
		}
	}

	addresses := make([]map[string]any, 0, len(p.Addresses))
	for _, addr := range p.Addresses {
		addresses = append(addresses, mapAddress(addr))
	}
	out["addresses"] = addresses
	if p.Selected != nil {
		out["selected_address"] = mapAddress(*p.Selected)
	}
	return out
}

func mapQuote(q *voucheruc.Quote) map[string]any {
	return map[string]any{
		"code":            q.Voucher.Code,
		"voucher_id":      q.Voucher.VoucherID,
		"discount_amount": q.Voucher.DiscountAmount,
		"subtotal":        q.Subtotal,
		"payable":         q.Payable,
	}
}

func mapResult(res *domcheckout.Result) map[string]any {
	out := map[string]any{
		"order_id":       res.OrderID,
		"receiver_name":  res.ReceiverName,
		"payment_method": res.PaymentMethod,
		"next":           res.Next,
	}
	if res.PaymentURL != "" {
		out["payment_url"] = res.PaymentURL
	}
	return out
}
