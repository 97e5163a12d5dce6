package address

import "strings"

type Province struct {
	ID            int
	Name          string
	NameExtension []string
}

type District struct {
	ID            int
	ProvinceID    int
	Name          string
	NameExtension []string
}

type Ward struct {
	Code          string
	DistrictID    int
	Name          string
	NameExtension []string
}

// Query is the display-name triple typed or selected by the buyer.
type Query struct {
	City     string
	District string
	Ward     string
}

// Resolution holds the provider codes found so far. Zero values mean the
// level (and every level below it) was not resolved.
type Resolution struct {
	ProvinceID int
	DistrictID int
	WardCode   string
}

func (r Resolution) Complete() bool {
	return r.ProvinceID != 0 && r.DistrictID != 0 && r.WardCode != ""
}

func (p Province) Matches(name string) bool { return matchName(name, p.Name, p.NameExtension) }
func (d District) Matches(name string) bool { return matchName(name, d.Name, d.NameExtension) }
func (w Ward) Matches(name string) bool     { return matchName(name, w.Name, w.NameExtension) }

func matchName(want, name string, aliases []string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return false
	}
	if strings.EqualFold(want, strings.TrimSpace(name)) {
		return true
	}
	for _, alias := range aliases {
		if strings.EqualFold(want, strings.TrimSpace(alias)) {
			return true
		}
	}
	return false
}
