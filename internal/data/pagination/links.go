package pagination

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// pageLink copies base and overwrites pageNumber and perPage. Every other query
// parameter is kept.
func pageLink(base *url.URL, pageNumber, perPage int) string {
	var u url.URL
	if base != nil {
		u = *base
	}
	u.User = nil
	u.Fragment = ""
	q := u.Query()
	q.Set("pageNumber", strconv.Itoa(pageNumber))
	q.Set("perPage", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()
	return u.String()
}

// RequestURL reconstructs the absolute URL of an inbound request, honoring
// X-Forwarded-Proto and X-Forwarded-Host set by a proxy.
func RequestURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); fwd != "" {
		scheme = strings.ToLower(strings.Split(fwd, ",")[0])
	}
	host := r.Host
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}
