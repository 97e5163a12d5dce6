package http

import (
	"net/http"

	domcart "example.com/storefront/internal/domain/cart"
)

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	summary, err := a.cartSvc.GetSummary(r.Context(), sess)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSummary(summary))
}

func mapLine(l domcart.Line) map[string]any {
	item := map[string]any{
		"id":       l.ID,
		"quantity": l.Quantity,
		"size":     l.Size,
	}
	if l.Variant != nil {
		item["variant_id"] = l.Variant.ID
		item["name"] = l.Variant.ProductName
		item["color"] = l.Variant.ColorName
		item["price"] = l.Variant.Price
		item["subtotal"] = l.Subtotal()
	}
	return item
}

func mapSummary(s domcart.Summary) map[string]any {
	items := make([]map[string]any, 0, len(s.Items))
	for _, l := range s.Items {
		items = append(items, mapLine(l))
	}
	unavailable := make([]map[string]any, 0, len(s.Unavailable))
	for _, l := range s.Unavailable {
		unavailable = append(unavailable, mapLine(l))
	}
	return map[string]any{
		"items":          items,
		"unavailable":    unavailable,
		"total_quantity": s.TotalQuantity,
		"total_price":    s.TotalPrice,
	}
}
