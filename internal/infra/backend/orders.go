package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	domorder "example.com/storefront/internal/domain/order"
	domuser "example.com/storefront/internal/domain/user"
)

type OrderRepository struct {
	c *Client
}

func NewOrderRepository(c *Client) *OrderRepository {
	return &OrderRepository{c: c}
}

type complaintJSON struct {
	Reason      string     `json:"reason"`
	Description string     `json:"description"`
	Images      []string   `json:"images,omitempty"`
	Status      string     `json:"status,omitempty"`
	AdminNote   string     `json:"adminNote,omitempty"`
	Resolution  string     `json:"resolution,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type orderJSON struct {
	ID             string            `json:"_id"`
	OrderID        string            `json:"orderId"`
	User           domorder.Receiver `json:"user"`
	Items          []domorder.Item   `json:"items"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	PaymentMethod  string            `json:"paymentMethod"`
	PaymentStatus  string            `json:"paymentStatus"`
	ShippingStatus string            `json:"shippingStatus"`
	PaymentURL     string            `json:"paymentUrl"`
	Complaint      *complaintJSON    `json:"complaint"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func (o orderJSON) toDomain() domorder.Order {
	out := domorder.Order{
		ID:             o.ID,
		OrderID:        o.OrderID,
		User:           o.User,
		Items:          o.Items,
		TotalAmount:    o.TotalAmount,
		PaymentMethod:  domorder.PaymentMethod(o.PaymentMethod),
		PaymentStatus:  domorder.PaymentStatus(o.PaymentStatus),
		ShippingStatus: domorder.ShippingStatus(o.ShippingStatus),
		PaymentURL:     o.PaymentURL,
		CreatedAt:      o.CreatedAt,
	}
	if o.Complaint != nil {
		out.Complaint = &domorder.Complaint{
			Reason:      domorder.ComplaintReason(o.Complaint.Reason),
			Description: o.Complaint.Description,
			Images:      o.Complaint.Images,
			Status:      o.Complaint.Status,
			AdminNote:   o.Complaint.AdminNote,
			Resolution:  o.Complaint.Resolution,
		}
		if o.Complaint.CreatedAt != nil {
			out.Complaint.CreatedAt = *o.Complaint.CreatedAt
		}
	}
	return out
}

type orderPageJSON struct {
	Data        []orderJSON `json:"data"`
	Total       int         `json:"total"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

func (r *OrderRepository) Create(ctx context.Context, s domuser.Session, p domorder.Payload) error {
	return r.c.do(ctx, s, http.MethodPost, "/orders", nil, p, nil)
}

func (r *OrderRepository) List(ctx context.Context, s domuser.Session, f domorder.ListFilter) (*domorder.Page, error) {
	q := url.Values{}
	if f.Email != "" {
		q.Set("email", f.Email)
	}
	q.Set("_page", strconv.Itoa(f.Page))
	q.Set("_limit", strconv.Itoa(f.Limit))
	if f.Status != "" {
		q.Set("status", f.Status)
	}

	var body orderPageJSON
	if err := r.c.do(ctx, s, http.MethodGet, "/orders", q, nil, &body); err != nil {
		return nil, err
	}

	page := &domorder.Page{
		Orders:      make([]domorder.Order, 0, len(body.Data)),
		Total:       body.Total,
		TotalPages:  body.TotalPages,
		CurrentPage: body.CurrentPage,
	}
	for _, o := range body.Data {
		page.Orders = append(page.Orders, o.toDomain())
	}
	if page.TotalPages == 0 && f.Limit > 0 {
		page.TotalPages = (page.Total + f.Limit - 1) / f.Limit
	}
	if page.CurrentPage == 0 {
		page.CurrentPage = f.Page
	}
	return page, nil
}

// GetByID accepts both a bare order object and one wrapped in {"data": ...}.
func (r *OrderRepository) GetByID(ctx context.Context, s domuser.Session, id string) (*domorder.Order, error) {
	var raw json.RawMessage
	err := r.c.do(ctx, s, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &raw)
	if err != nil {
		if isNotFound(err) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}

	var wrapped struct {
		Data *orderJSON `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		o := wrapped.Data.toDomain()
		return &o, nil
	}
	var bare orderJSON
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	if bare.ID == "" {
		return nil, domorder.ErrOrderNotFound
	}
	o := bare.toDomain()
	return &o, nil
}

func (r *OrderRepository) ConfirmReceived(ctx context.Context, s domuser.Session, orderID string) error {
	path := "/orders/orders/" + url.PathEscape(orderID) + "/confirm-received"
	return r.c.do(ctx, s, http.MethodPost, path, nil, nil, nil)
}

func (r *OrderRepository) CreateComplaint(ctx context.Context, s domuser.Session, orderID string, c domorder.Complaint) error {
	path := "/orders/orders/" + url.PathEscape(orderID) + "/complaint"
	body := complaintJSON{
		Reason:      string(c.Reason),
		Description: c.Description,
		Images:      c.Images,
	}
	return r.c.do(ctx, s, http.MethodPost, path, nil, body, nil)
}
