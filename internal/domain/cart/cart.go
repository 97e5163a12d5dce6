package cart

import "github.com/shopspring/decimal"

// Variant là biến thể sản phẩm (màu/size) đã được backend populate.
type Variant struct {
	ID          string
	ProductName string
	ColorName   string
	Price       decimal.Decimal
}

type Line struct {
	ID       string
	Variant  *Variant
	Quantity int64
	Size     string
}

// Available reports whether the line still points at a populated variant.
func (l Line) Available() bool {
	return l.Variant != nil && l.Variant.ID != ""
}

func (l Line) Subtotal() decimal.Decimal {
	if !l.Available() {
		return decimal.Zero
	}
	return l.Variant.Price.Mul(decimal.NewFromInt(l.Quantity))
}

type Summary struct {
	Items         []Line
	Unavailable   []Line
	TotalQuantity int64
	TotalPrice    decimal.Decimal
}

func (s Summary) IsEmpty() bool {
	return len(s.Items) == 0
}

// Aggregate splits lines into orderable and unavailable ones. Only orderable
// lines count toward TotalQuantity and TotalPrice; unavailable lines stay in
// the backend cart untouched.
func Aggregate(lines []Line) Summary {
	s := Summary{
		Items:       make([]Line, 0, len(lines)),
		Unavailable: []Line{},
		TotalPrice:  decimal.Zero,
	}
	for _, l := range lines {
		if !l.Available() {
			s.Unavailable = append(s.Unavailable, l)
			continue
		}
		s.Items = append(s.Items, l)
		if l.Quantity > 0 {
			s.TotalQuantity += l.Quantity
			s.TotalPrice = s.TotalPrice.Add(l.Subtotal())
		}
	}
	return s
}
