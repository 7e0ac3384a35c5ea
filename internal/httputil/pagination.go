package httputil

import (
	"net/http"
	"strconv"
)

// Pagination defaults. MaxLimit caps page size; the query parameters are
// client-controlled strings and an unbounded limit would allow a single
// request to pull an entire collection.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParsePageLimit reads page and limit query parameters, applying defaults
// and clamping to sane ranges. Malformed values fall back to defaults.
func ParsePageLimit(r *http.Request) (page, limit int) {
	page = DefaultPage
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed >= 1 {
			page = parsed
		}
	}

	limit = DefaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed >= 1 {
			limit = parsed
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return page, limit
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
