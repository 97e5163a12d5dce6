package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	domaddress "example.com/storefront/internal/domain/address"
	domuser "example.com/storefront/internal/domain/user"
)

type AddressRepository struct {
	c *Client
}

func NewAddressRepository(c *Client) *AddressRepository {
	return &AddressRepository{c: c}
}

// flexID accepts ids sent either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type placeJSON struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type addressJSON struct {
	ID           string     `json:"_id,omitempty"`
	ReceiverName string     `json:"receiver_name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Ward         *placeJSON `json:"ward,omitempty"`
	Commune      *placeJSON `json:"commune,omitempty"`
	District     *placeJSON `json:"district"`
	City         *placeJSON `json:"city"`
	Type         string     `json:"type"`
}

func place(p *placeJSON) domaddress.Place {
	if p == nil {
		return domaddress.Place{}
	}
	return domaddress.Place{ID: string(p.ID), Name: p.Name}
}

// Một số bản ghi cũ lưu phường dưới khoá "commune".
func (a addressJSON) toDomain(defaultID string) domaddress.ShippingAddress {
	ward := a.Ward
	if ward == nil || ward.Name == "" {
		ward = a.Commune
	}
	return domaddress.ShippingAddress{
		ID:           a.ID,
		ReceiverName: a.ReceiverName,
		Phone:        a.Phone,
		Address:      a.Address,
		Ward:         place(ward),
		District:     place(a.District),
		City:         place(a.City),
		Type:         domaddress.Type(a.Type),
		IsDefault:    defaultID != "" && a.ID == defaultID,
	}
}

type myInfoJSON struct {
	ShippingAddresses []addressJSON `json:"shipping_addresses"`
	DefaultAddress    string        `json:"defaultAddress"`
}

func (r *AddressRepository) GetBook(ctx context.Context, s domuser.Session) (domaddress.Book, error) {
	var info myInfoJSON
	if err := r.c.do(ctx, s, http.MethodGet, "/auth/my-info", nil, nil, &info); err != nil {
		return domaddress.Book{}, err
	}
	book := domaddress.Book{
		Addresses: make([]domaddress.ShippingAddress, 0, len(info.ShippingAddresses)),
		DefaultID: info.DefaultAddress,
	}
	for _, a := range info.ShippingAddresses {
		book.Addresses = append(book.Addresses, a.toDomain(info.DefaultAddress))
	}
	return book, nil
}

// Create returns the full list after insertion; the new address is last.
func (r *AddressRepository) Create(ctx context.Context, s domuser.Session, in domaddress.NewAddress) ([]domaddress.ShippingAddress, error) {
	body := addressJSON{
		ReceiverName: in.ReceiverName,
		Phone:        in.Phone,
		Address:      in.Address,
		Ward:         &placeJSON{ID: flexID(in.Ward.ID), Name: in.Ward.Name},
		District:     &placeJSON{ID: flexID(in.District.ID), Name: in.District.Name},
		City:         &placeJSON{ID: flexID(in.City.ID), Name: in.City.Name},
		Type:         string(in.Type),
	}
	var resp struct {
		Data []addressJSON `json:"data"`
	}
	if err := r.c.do(ctx, s, http.MethodPost, "/auth/add-shipping-address", nil, body, &resp); err != nil {
		return nil, err
	}
	out := make([]domaddress.ShippingAddress, 0, len(resp.Data))
	for _, a := range resp.Data {
		out = append(out, a.toDomain(""))
	}
	return out, nil
}

func (r *AddressRepository) SetDefault(ctx context.Context, s domuser.Session, addressID string) error {
	return r.c.do(ctx, s, http.MethodPut, "/auth/address/default/"+url.PathEscape(addressID), nil, struct{}{}, nil)
}
