package pagination

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageNumber = 1
	DefaultPerPage    = 5
	DefaultSortBy     = "createdAt"
)

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

var (
	ErrInvalidOrder     = errors.New("order must be ASC or DESC")
	ErrUnknownSortField = errors.New("unknown sort field")
)

// Request is the caller's page request as bound from query parameters.
// Nil numbers and empty strings mean "use the default".
type Request struct {
	PageNumber *int   `form:"pageNumber" json:"pageNumber"`
	PerPage    *int   `form:"perPage" json:"perPage"`
	SendAll    bool   `form:"sendAll" json:"sendAll"`
	SortBy     string `form:"sortBy" json:"sortBy"`
	Order      Order  `form:"order" json:"order"`
}

// Params is a normalized Request.
type Params struct {
	PageNumber int
	PerPage    int
	SendAll    bool
	Sort       Sort
}

// Normalize fills defaults and clamps supplied numbers below 1 up to 1.
func (r Request) Normalize() (Params, error) {
	p := Params{
		PageNumber: DefaultPageNumber,
		PerPage:    DefaultPerPage,
		SendAll:    r.SendAll,
		Sort:       Sort{Field: strings.TrimSpace(r.SortBy), Order: OrderAsc},
	}
	if r.PageNumber != nil {
		p.PageNumber = max(*r.PageNumber, 1)
	}
	if r.PerPage != nil {
		p.PerPage = max(*r.PerPage, 1)
	}
	if p.Sort.Field == "" {
		p.Sort.Field = DefaultSortBy
	}
	switch o := Order(strings.ToUpper(strings.TrimSpace(string(r.Order)))); o {
	case "":
	case OrderAsc, OrderDesc:
		p.Sort.Order = o
	default:
		return Params{}, fmt.Errorf("%w: %q", ErrInvalidOrder, r.Order)
	}
	return p, nil
}

// PastEnd reports whether the page offset cannot be represented as an int.
// No store holds that many rows, so such a page is always empty.
func (p Params) PastEnd() bool {
	return !p.SendAll && p.PageNumber-1 > math.MaxInt/p.PerPage
}

// Window returns the offset/limit for the page, or nil when every row is wanted.
// An offset that would overflow saturates at math.MaxInt.
func (p Params) Window() *Window {
	if p.SendAll {
		return nil
	}
	if p.PastEnd() {
		return &Window{Skip: math.MaxInt, Take: p.PerPage}
	}
	return &Window{Skip: (p.PageNumber - 1) * p.PerPage, Take: p.PerPage}
}
