package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domorder "example.com/storefront/internal/domain/order"
)

type complaintRequest struct {
	Reason      string   `json:"reason" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	result, err := a.orderSvc.List(r.Context(), sess, domorder.ListFilter{
		Page:   page,
		Limit:  limit,
		Status: q.Get("status"),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	orders := make([]map[string]any, 0, len(result.Orders))
	for i := range result.Orders {
		orders = append(orders, mapOrder(&result.Orders[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":       orders,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
	})
}

func (a *API) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	o, err := a.orderSvc.Get(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (a *API) handleTrackOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	orderID := chi.URLParam(r, "orderId")
	id, err := a.orderSvc.Track(r.Context(), sess, orderID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"order_id": orderID,
		"id":       id,
	})
}

func (a *API) handleConfirmReceived(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	if err := a.orderSvc.ConfirmReceived(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func (a *API) handleComplain(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req complaintRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	err := a.orderSvc.Complain(r.Context(), sess, chi.URLParam(r, "id"), domorder.Complaint{
		Reason:      domorder.ComplaintReason(req.Reason),
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted"})
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"product_variant_id": item.ProductVariantID,
			"name":               item.ProductName,
			"price":              item.Price,
			"quantity":           item.Quantity,
			"size":               item.Size,
		})
	}

	out := map[string]any{
		"id":               o.ID,
		"order_id":         o.OrderID,
		"receiver":         o.User,
		"items":            items,
		"total_amount":     o.TotalAmount,
		"payment_method":   o.PaymentMethod,
		"payment_status":   o.PaymentStatus,
		"shipping_status":  o.ShippingStatus,
		"awaiting_payment": o.AwaitingPayment(),
		"created_at":       o.CreatedAt,
	}
	if o.AwaitingPayment() {
		out["payment_url"] = o.PaymentURL
	}
	if o.Complaint != nil {
		out["complaint"] = map[string]any{
			"reason":      o.Complaint.Reason,
			"description": o.Complaint.Description,
			"images":      o.Complaint.Images,
			"status":      o.Complaint.Status,
			"admin_note":  o.Complaint.AdminNote,
			"resolution":  o.Complaint.Resolution,
		}
	}
	return out
}
