package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentMomo    PaymentMethod = "MOMO"
	PaymentZaloPay PaymentMethod = "ZALOPAY"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCOD, PaymentMomo, PaymentZaloPay:
		return true
	default:
		return false
	}
}

// ParsePaymentMethod accepts the lower-case radio values ("cod", "momo",
// "zalopay") as well as the canonical upper-case form.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	p := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrInvalidPayment
	}
	return p, nil
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Chờ thanh toán"
	PaymentStatusPaid    PaymentStatus = "Đã thanh toán"
	PaymentStatusExpired PaymentStatus = "Huỷ do quá thời gian thanh toán"
)

type ShippingStatus string

const (
	ShippingAwaitingConfirmation ShippingStatus = "Chờ xác nhận"
	ShippingConfirmed            ShippingStatus = "Đã xác nhận"
	ShippingInTransit            ShippingStatus = "Đang giao hàng"
	ShippingDelivered            ShippingStatus = "Giao hàng thành công"
	ShippingReceived             ShippingStatus = "Đã nhận hàng"
	ShippingCanceled             ShippingStatus = "Đã hủy"
	ShippingComplaint            ShippingStatus = "Khiếu nại"
	ShippingComplaintProcessing  ShippingStatus = "Đang xử lý khiếu nại"
	ShippingComplaintResolved    ShippingStatus = "Khiếu nại được giải quyết"
	ShippingComplaintRejected    ShippingStatus = "Khiếu nại bị từ chối"
)

// Người mua chỉ xác nhận đã nhận khi đơn đã giao thành công.
func (s ShippingStatus) CanConfirmReceived() bool {
	return s == ShippingDelivered
}

func (s ShippingStatus) CanComplain() bool {
	return s == ShippingDelivered || s == ShippingInTransit
}

type Receiver struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Item struct {
	ProductVariantID string          `json:"productVariantId"`
	ProductName      string          `json:"productName"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int64           `json:"quantity"`
	Size             string          `json:"size"`
}

// Payload is the order-creation request sent to POST /orders.
type Payload struct {
	OrderID       string          `json:"orderId"`
	User          Receiver        `json:"user"`
	Items         []Item          `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	OrderInfo     string          `json:"orderInfo"`
	ExtraData     string          `json:"extraData"`
	OrderGroupID  string          `json:"orderGroupId"`
	PaymentURL    string          `json:"paymentUrl"`
	VoucherID     string          `json:"voucherId,omitempty"`
}

type ComplaintReason string

const (
	ReasonNotReceived ComplaintReason = "Chưa nhận được hàng"
	ReasonDamaged     ComplaintReason = "Hàng bị hư hỏng"
	ReasonWrongItem   ComplaintReason = "Sai sản phẩm"
	ReasonMissingItem ComplaintReason = "Thiếu hàng"
	ReasonOther       ComplaintReason = "Khác"
)

func (r ComplaintReason) IsValid() bool {
	switch r {
	case ReasonNotReceived, ReasonDamaged, ReasonWrongItem, ReasonMissingItem, ReasonOther:
		return true
	default:
		return false
	}
}

type Complaint struct {
	Reason      ComplaintReason
	Description string
	Images      []string
	Status      string
	AdminNote   string
	Resolution  string
	CreatedAt   time.Time
}

// Order is the server-owned record read by the confirmation and tracking views.
type Order struct {
	ID             string
	OrderID        string
	User           Receiver
	Items          []Item
	TotalAmount    decimal.Decimal
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	ShippingStatus ShippingStatus
	PaymentURL     string
	Complaint      *Complaint
	CreatedAt      time.Time
}

// AwaitingPayment reports whether the buyer can still reopen the gateway page.
func (o Order) AwaitingPayment() bool {
	return o.PaymentStatus == PaymentStatusPending && o.PaymentURL != ""
}

const StatusFilterAll = "Tất cả"

type ListFilter struct {
	Email string
	Page  int
	Limit int

	// Status lọc theo trạng thái; rỗng nghĩa là "Tất cả".
	Status string
}

func (f ListFilter) Normalize() ListFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Status == StatusFilterAll {
		f.Status = ""
	}
	return f
}

type Page struct {
	Orders      []Order
	Total       int
	TotalPages  int
	CurrentPage int
}
