package pagination

import (
	"context"
	"net/url"
)

// Sort is a resolved order clause in API field names.
type Sort struct {
	Field string
	Order Order
}

func (s Sort) Desc() bool { return s.Order == OrderDesc }

type Window struct {
	Skip int
	Take int
}

// Source is the capability set the engine needs from a store. Count and Fetch
// must apply the same filter.
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	Fetch(ctx context.Context, sort Sort, window *Window) ([]T, error)
}

type Meta struct {
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
}

type Links struct {
	First    string  `json:"first"`
	Last     string  `json:"last"`
	Current  string  `json:"current"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

type Page[T any] struct {
	Data  []T   `json:"data"`
	Meta  Meta  `json:"meta"`
	Links Links `json:"links"`
}

// Paginate runs one page request against src. current is the URL the request
// arrived on; links are built from a copy of it.
func Paginate[T any](ctx context.Context, src Source[T], req Request, current *url.URL) (*Page[T], error) {
	params, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	var items []T
	if !params.PastEnd() {
		if items, err = src.Fetch(ctx, params.Sort, params.Window()); err != nil {
			return nil, err
		}
	}
	total, err := src.Count(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	page := &Page[T]{Data: items}
	if params.SendAll {
		page.Meta = Meta{
			ItemsPerPage: int(total),
			TotalItems:   total,
			CurrentPage:  1,
			TotalPages:   1,
		}
		first := pageLink(current, 1, params.PerPage)
		page.Links = Links{First: first, Last: first, Current: first}
		return page, nil
	}

	totalPages := TotalPages(total, params.PerPage)
	page.Meta = Meta{
		ItemsPerPage: params.PerPage,
		TotalItems:   total,
		CurrentPage:  params.PageNumber,
		TotalPages:   totalPages,
	}
	lastPage := totalPages
	if lastPage < 1 {
		lastPage = 1
	}
	page.Links = Links{
		First:   pageLink(current, 1, params.PerPage),
		Last:    pageLink(current, lastPage, params.PerPage),
		Current: pageLink(current, params.PageNumber, params.PerPage),
	}
	if params.PageNumber < totalPages {
		next := pageLink(current, params.PageNumber+1, params.PerPage)
		page.Links.Next = &next
	}
	if params.PageNumber > 1 {
		prev := pageLink(current, params.PageNumber-1, params.PerPage)
		page.Links.Previous = &prev
	}
	return page, nil
}

// TotalPages is ceil(total/perPage); perPage below 1 counts as 1.
func TotalPages(total int64, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	if total <= 0 {
		return 0
	}
	return int((total-1)/int64(perPage) + 1)
}

// MapPage converts page data while keeping meta and links.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	if p == nil {
		return nil
	}
	out := make([]U, 0, len(p.Data))
	for _, item := range p.Data {
		out = append(out, fn(item))
	}
	return &Page[U]{Data: out, Meta: p.Meta, Links: p.Links}
}
