package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediahub/internal/httputil"
	"mediahub/internal/model"
	"mediahub/internal/service"
	"mediahub/internal/transport/http/middleware"
	"mediahub/internal/validation"
)

// RatingHandler groups rating endpoints. Content stats are public; the
// caller's own rating and all writes require auth. Ratings are keyed by
// query parameters, not path segments, because content ids are
// client-namespace strings.
type RatingHandler struct {
	ratingService *service.RatingService
}

func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Rate submits or overwrites the caller's rating
// POST /ratings
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	rating, err := h.ratingService.Rate(r.Context(), user.ID, &req)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to submit rating")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, rating)
}

// GetContentStats returns the public aggregate for a content item
// GET /ratings/content?content_type=movie&content_id=abc
func (h *RatingHandler) GetContentStats(w http.ResponseWriter, r *http.Request) {
	contentType, msg := requiredContentType(r)
	if msg != "" {
		httputil.WriteBadRequest(w, msg)
		return
	}

	contentID := r.URL.Query().Get("content_id")
	if contentID == "" {
		contentID = r.URL.Query().Get("contentId")
	}
	if contentID == "" {
		httputil.WriteBadRequest(w, "content_id is required")
		return
	}

	stats, err := h.ratingService.GetContentStats(r.Context(), contentType, contentID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to get rating stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// GetUserRating returns the caller's own rating for a content item
// GET /ratings/user?content_type=movie&content_id=abc
func (h *RatingHandler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	contentType, msg := requiredContentType(r)
	if msg != "" {
		httputil.WriteBadRequest(w, msg)
		return
	}

	contentID := r.URL.Query().Get("content_id")
	if contentID == "" {
		contentID = r.URL.Query().Get("contentId")
	}
	if contentID == "" {
		httputil.WriteBadRequest(w, "content_id is required")
		return
	}

	rating, err := h.ratingService.GetUserRating(r.Context(), user.ID, contentType, contentID)
	if err != nil {
		if errors.Is(err, model.ErrRatingNotFound) {
			httputil.WriteNotFound(w, "Rating not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get rating")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rating)
}

// Remove deletes the caller's rating
// DELETE /ratings?content_type=movie&content_id=abc
func (h *RatingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	contentType, msg := requiredContentType(r)
	if msg != "" {
		httputil.WriteBadRequest(w, msg)
		return
	}

	contentID := r.URL.Query().Get("content_id")
	if contentID == "" {
		contentID = r.URL.Query().Get("contentId")
	}
	if contentID == "" {
		httputil.WriteBadRequest(w, "content_id is required")
		return
	}

	if err := h.ratingService.Remove(r.Context(), user.ID, contentType, contentID); err != nil {
		if errors.Is(err, model.ErrRatingNotFound) {
			httputil.WriteNotFound(w, "Rating not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to remove rating")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Rating removed"})
}
