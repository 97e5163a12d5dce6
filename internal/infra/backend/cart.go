package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	domcart "example.com/storefront/internal/domain/cart"
	domuser "example.com/storefront/internal/domain/user"
)

type CartRepository struct {
	c *Client
}

func NewCartRepository(c *Client) *CartRepository {
	return &CartRepository{c: c}
}

type productRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (p *productRef) UnmarshalJSON(data []byte) error {
	if data[0] == '"' {
		return json.Unmarshal(data, &p.ID)
	}
	type plain productRef
	return json.Unmarshal(data, (*plain)(p))
}

type colorRef struct {
	Name string `json:"name"`
}

func (c *colorRef) UnmarshalJSON(data []byte) error {
	if data[0] == '"' {
		return json.Unmarshal(data, &c.Name)
	}
	type plain colorRef
	return json.Unmarshal(data, (*plain)(c))
}

type variantJSON struct {
	ID        string          `json:"_id"`
	Price     decimal.Decimal `json:"price"`
	ProductID *productRef     `json:"productId"`
	Color     *colorRef       `json:"color"`
}

// variantRef is the line's productVariantId: a populated object, a bare id
// string, or null. Only the object form yields a variant.
type variantRef struct {
	Variant *variantJSON
}

func (v *variantRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		v.Variant = nil
		return nil
	}
	var vj variantJSON
	if err := json.Unmarshal(data, &vj); err != nil {
		return err
	}
	v.Variant = &vj
	return nil
}

type cartLineJSON struct {
	ID               string     `json:"_id"`
	ProductVariantID variantRef `json:"productVariantId"`
	Quantity         int64      `json:"quantity"`
	Size             string     `json:"size"`
}

type cartJSON struct {
	Items []cartLineJSON `json:"items"`
}

func (r *CartRepository) ListLines(ctx context.Context, s domuser.Session) ([]domcart.Line, error) {
	var body cartJSON
	if err := r.c.do(ctx, s, http.MethodGet, "/cart", nil, nil, &body); err != nil {
		return nil, err
	}

	lines := make([]domcart.Line, 0, len(body.Items))
	for _, item := range body.Items {
		line := domcart.Line{ID: item.ID, Quantity: item.Quantity, Size: item.Size}
		if vj := item.ProductVariantID.Variant; vj != nil {
			variant := &domcart.Variant{ID: vj.ID, Price: vj.Price}
			if vj.ProductID != nil {
				variant.ProductName = vj.ProductID.Name
			}
			if vj.Color != nil {
				variant.ColorName = vj.Color.Name
			}
			line.Variant = variant
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Clear empties the backend cart. The backend exposes it as a GET.
func (r *CartRepository) Clear(ctx context.Context, s domuser.Session) error {
	return r.c.do(ctx, s, http.MethodGet, "/cart/clear", nil, nil, nil)
}
