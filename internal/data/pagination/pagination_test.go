package pagination

import (
	"context"
	"errors"
	"math"
	"net/url"
	"testing"
)

type sliceSource struct {
	items    []int
	lastSort Sort
	lastWin  *Window
	fetchErr error
}

func (s *sliceSource) Count(context.Context) (int64, error) { return int64(len(s.items)), nil }

func (s *sliceSource) Fetch(_ context.Context, sort Sort, w *Window) ([]int, error) {
	s.lastSort, s.lastWin = sort, w
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if w == nil {
		return append([]int(nil), s.items...), nil
	}
	if w.Skip >= len(s.items) {
		return nil, nil
	}
	end := min(w.Skip+w.Take, len(s.items))
	return append([]int(nil), s.items[w.Skip:end]...), nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u
}

func intp(v int) *int { return &v }

func TestPaginateMiddlePage(t *testing.T) {
	src := &sliceSource{items: seq(23)}
	cur := mustURL(t, "http://localhost:8080/api/user?pageNumber=3&perPage=5")

	page, err := Paginate[int](context.Background(), src, Request{PageNumber: intp(3), PerPage: intp(5)}, cur)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if len(page.Data) != 5 || page.Data[0] != 10 || page.Data[4] != 14 {
		t.Fatalf("unexpected data: %v", page.Data)
	}
	want := Meta{ItemsPerPage: 5, TotalItems: 23, CurrentPage: 3, TotalPages: 5}
	if page.Meta != want {
		t.Fatalf("meta: want %+v got %+v", want, page.Meta)
	}
	if page.Links.Next == nil || *page.Links.Next != "http://localhost:8080/api/user?pageNumber=4&perPage=5" {
		t.Fatalf("next link: %v", page.Links.Next)
	}
	if page.Links.Previous == nil || *page.Links.Previous != "http://localhost:8080/api/user?pageNumber=2&perPage=5" {
		t.Fatalf("previous link: %v", page.Links.Previous)
	}
	if page.Links.First != "http://localhost:8080/api/user?pageNumber=1&perPage=5" {
		t.Fatalf("first link: %s", page.Links.First)
	}
	if page.Links.Last != "http://localhost:8080/api/user?pageNumber=5&perPage=5" {
		t.Fatalf("last link: %s", page.Links.Last)
	}
	if src.lastWin == nil || src.lastWin.Skip != 10 || src.lastWin.Take != 5 {
		t.Fatalf("window: %+v", src.lastWin)
	}
}

func TestPaginateSendAllOverridesWindow(t *testing.T) {
	src := &sliceSource{items: seq(23)}
	cur := mustURL(t, "http://h/api/roles?sendAll=true")

	page, err := Paginate[int](context.Background(), src, Request{PageNumber: intp(4), SendAll: true}, cur)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if src.lastWin != nil {
		t.Fatalf("sendAll must not window the fetch: %+v", src.lastWin)
	}
	if len(page.Data) != 23 {
		t.Fatalf("expected all rows, got %d", len(page.Data))
	}
	want := Meta{ItemsPerPage: 23, TotalItems: 23, CurrentPage: 1, TotalPages: 1}
	if page.Meta != want {
		t.Fatalf("meta: want %+v got %+v", want, page.Meta)
	}
	if page.Links.Next != nil || page.Links.Previous != nil {
		t.Fatalf("sendAll has no next/previous: %+v", page.Links)
	}
	if page.Links.First != page.Links.Last || page.Links.First != page.Links.Current {
		t.Fatalf("sendAll links should all point at page 1: %+v", page.Links)
	}
}

func TestPaginateOutOfRangePage(t *testing.T) {
	src := &sliceSource{items: seq(23)}
	page, err := Paginate[int](context.Background(), src, Request{PageNumber: intp(99)}, mustURL(t, "http://h/x"))
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("expected empty non-nil data, got %#v", page.Data)
	}
	if page.Meta.CurrentPage != 99 || page.Meta.TotalPages != 5 {
		t.Fatalf("meta: %+v", page.Meta)
	}
	if page.Links.Next != nil {
		t.Fatalf("no next past the end: %v", *page.Links.Next)
	}
	if page.Links.Previous == nil || *page.Links.Previous != "http://h/x?pageNumber=98&perPage=5" {
		t.Fatalf("previous link: %v", page.Links.Previous)
	}
}

func TestPaginateEmptySource(t *testing.T) {
	page, err := Paginate[int](context.Background(), &sliceSource{}, Request{}, mustURL(t, "http://h/x"))
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if page.Meta.TotalPages != 0 || page.Meta.TotalItems != 0 {
		t.Fatalf("meta: %+v", page.Meta)
	}
	if page.Links.Last != "http://h/x?pageNumber=1&perPage=5" {
		t.Fatalf("last link should fall back to page 1: %s", page.Links.Last)
	}
	if page.Links.Next != nil || page.Links.Previous != nil {
		t.Fatalf("unexpected links: %+v", page.Links)
	}
}

func TestPaginateKeepsForeignQueryParams(t *testing.T) {
	src := &sliceSource{items: seq(12)}
	cur := mustURL(t, "https://api.example.com/api/user?roleId=abc&pageNumber=1&order=DESC")

	page, err := Paginate[int](context.Background(), src, Request{Order: "desc"}, cur)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if page.Links.Next == nil {
		t.Fatalf("expected next link")
	}
	next := mustURL(t, *page.Links.Next)
	q := next.Query()
	if q.Get("roleId") != "abc" || q.Get("order") != "DESC" || q.Get("pageNumber") != "2" || q.Get("perPage") != "5" {
		t.Fatalf("unexpected next query: %s", next.RawQuery)
	}
	if next.Scheme != "https" || next.Host != "api.example.com" || next.Path != "/api/user" {
		t.Fatalf("unexpected next url: %s", next)
	}
	if src.lastSort.Order != OrderDesc {
		t.Fatalf("order not upper-cased: %q", src.lastSort.Order)
	}
}

func TestPaginatePropagatesSourceErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Paginate[int](context.Background(), &sliceSource{fetchErr: boom}, Request{}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{23, 5, 5},
		{3, 0, 3},
		{23, math.MaxInt, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.perPage); got != tc.want {
			t.Fatalf("TotalPages(%d, %d): want %d got %d", tc.total, tc.perPage, tc.want, got)
		}
	}
}

func TestMapPageKeepsMetaAndLinks(t *testing.T) {
	in := &Page[int]{Data: []int{1, 2}, Meta: Meta{TotalItems: 2}, Links: Links{First: "f"}}
	out := MapPage(in, func(v int) string { return string(rune('a' + v)) })
	if len(out.Data) != 2 || out.Data[0] != "b" || out.Meta != in.Meta || out.Links.First != "f" {
		t.Fatalf("unexpected mapped page: %+v", out)
	}
}

func TestPaginateHugePerPageIsEmptyPastFirstPage(t *testing.T) {
	src := &sliceSource{items: seq(23)}
	cur := mustURL(t, "http://localhost:8080/api/roles")

	page, err := Paginate[int](context.Background(), src, Request{PageNumber: intp(3), PerPage: intp(math.MaxInt)}, cur)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	if len(page.Data) != 0 || page.Data == nil {
		t.Fatalf("expected empty data, got %v", page.Data)
	}
	if page.Meta.CurrentPage != 3 || page.Meta.TotalPages != 1 || page.Meta.TotalItems != 23 {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
	if src.lastWin != nil {
		t.Fatalf("store should not be queried for an unreachable page: %+v", src.lastWin)
	}
	if page.Links.Next != nil || page.Links.Previous == nil {
		t.Fatalf("unexpected links: %+v", page.Links)
	}
}
