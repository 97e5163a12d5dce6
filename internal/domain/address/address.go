package address

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeHome    Type = "home"
	TypeCompany Type = "company"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeHome, TypeCompany:
		return true
	default:
		return false
	}
}

// Place là một cấp hành chính (tỉnh, quận, phường) gồm id và tên hiển thị.
type Place struct {
	ID   string
	Name string
}

type ShippingAddress struct {
	ID           string
	ReceiverName string
	Phone        string
	Address      string
	Ward         Place
	District     Place
	City         Place
	Type         Type
	IsDefault    bool
}

// IsComplete requires a street line plus ward, district and city names.
func (a ShippingAddress) IsComplete() bool {
	return strings.TrimSpace(a.Address) != "" &&
		strings.TrimSpace(a.District.Name) != "" &&
		strings.TrimSpace(a.Ward.Name) != "" &&
		strings.TrimSpace(a.City.Name) != ""
}

// FullAddress returns "street, district, ward, city", or "" when incomplete.
func (a ShippingAddress) FullAddress() string {
	if !a.IsComplete() {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s, %s", a.Address, a.District.Name, a.Ward.Name, a.City.Name)
}

// Book is the user's saved addresses as returned by the backend.
type Book struct {
	Addresses []ShippingAddress
	DefaultID string
}

func (b Book) Find(id string) (ShippingAddress, bool) {
	for _, a := range b.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return ShippingAddress{}, false
}

func (b Book) HasDefault() bool {
	if b.DefaultID == "" {
		return false
	}
	_, ok := b.Find(b.DefaultID)
	return ok
}

// Select picks preferredID when present, else the default, else the first
// saved address.
func (b Book) Select(preferredID string) (ShippingAddress, bool) {
	if preferredID != "" {
		if a, ok := b.Find(preferredID); ok {
			return a, true
		}
	}
	if a, ok := b.Find(b.DefaultID); ok && b.DefaultID != "" {
		a.IsDefault = true
		return a, true
	}
	if len(b.Addresses) > 0 {
		return b.Addresses[0], true
	}
	return ShippingAddress{}, false
}
