package http

import (
	"net/http"

	domaddress "example.com/storefront/internal/domain/address"
)

type placeRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type addAddressRequest struct {
	ReceiverName string       `json:"receiver_name" validate:"required"`
	Phone        string       `json:"phone" validate:"required,numeric,min=9,max=11"`
	Address      string       `json:"address" validate:"required"`
	Ward         placeRequest `json:"ward"`
	District     placeRequest `json:"district"`
	City         placeRequest `json:"city"`
	Type         string       `json:"type" validate:"omitempty,oneof=home company"`
	IsDefault    bool         `json:"is_default"`
}

type resolveAddressRequest struct {
	City     string `json:"city" validate:"required"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

func (a *API) handleListAddresses(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	book, err := a.addressSvc.Book(r.Context(), sess)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	addresses := make([]map[string]any, 0, len(book.Addresses))
	for _, addr := range book.Addresses {
		addr.IsDefault = addr.IsDefault || addr.ID == book.DefaultID
		addresses = append(addresses, mapAddress(addr))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"addresses":  addresses,
		"default_id": book.DefaultID,
	})
}

func (a *API) handleAddAddress(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req addAddressRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	created, err := a.addressSvc.Add(r.Context(), sess, domaddress.NewAddress{
		ReceiverName: req.ReceiverName,
		Phone:        req.Phone,
		Address:      req.Address,
		Ward:         domaddress.Place{ID: req.Ward.ID, Name: req.Ward.Name},
		District:     domaddress.Place{ID: req.District.ID, Name: req.District.Name},
		City:         domaddress.Place{ID: req.City.ID, Name: req.City.Name},
		Type:         domaddress.Type(req.Type),
	}, req.IsDefault)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapAddress(created))
}

func (a *API) handleResolveAddress(w http.ResponseWriter, r *http.Request) {
	var req resolveAddressRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	res, err := a.resolver.Resolve(r.Context(), domaddress.Query{
		City:     req.City,
		District: req.District,
		Ward:     req.Ward,
	})
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"province_id": res.ProvinceID,
		"district_id": res.DistrictID,
		"ward_code":   res.WardCode,
		"complete":    res.Complete(),
	})
}
