package handler

import (
	"net/http"

	"mediahub/internal/model"
)

// contentTypeFilter reads the optional content type filter from the
// query string. Returns an error message for unknown values.
func contentTypeFilter(r *http.Request) (*model.ContentType, string) {
	raw := r.URL.Query().Get("content_type")
	if raw == "" {
		raw = r.URL.Query().Get("contentType")
	}
	if raw == "" {
		return nil, ""
	}

	ct := model.ContentType(raw)
	if !ct.IsValid() {
		return nil, "content_type must be movie or comic"
	}
	return &ct, ""
}

// requiredContentType reads a mandatory content type from the query string.
func requiredContentType(r *http.Request) (model.ContentType, string) {
	ct, msg := contentTypeFilter(r)
	if msg != "" {
		return "", msg
	}
	if ct == nil {
		return "", "content_type is required"
	}
	return *ct, ""
}
