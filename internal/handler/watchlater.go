package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediahub/internal/httputil"
	"mediahub/internal/model"
	"mediahub/internal/service"
	"mediahub/internal/transport/http/middleware"
	"mediahub/internal/validation"
)

// WatchLaterHandler groups watch-later endpoints. All of them require auth.
type WatchLaterHandler struct {
	watchLaterService *service.WatchLaterService
}

func NewWatchLaterHandler(watchLaterService *service.WatchLaterService) *WatchLaterHandler {
	return &WatchLaterHandler{watchLaterService: watchLaterService}
}

// Add puts a content item into the caller's watch-later list
// POST /watch-later
func (h *WatchLaterHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreateWatchLaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	entry, err := h.watchLaterService.Add(r.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, model.ErrWatchLaterExists) {
			httputil.WriteConflict(w, "Content is already in watch later")
			return
		}
		httputil.WriteInternalError(w, "Failed to add to watch later")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// List returns a page of the caller's watch-later entries
// GET /watch-later
func (h *WatchLaterHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	contentType, msg := contentTypeFilter(r)
	if msg != "" {
		httputil.WriteBadRequest(w, msg)
		return
	}

	page, limit := httputil.ParsePageLimit(r)

	result, err := h.watchLaterService.List(r.Context(), user.ID, contentType, page, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list watch later")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Check reports whether a content item is in the watch-later list
// GET /watch-later/check/{contentId}
func (h *WatchLaterHandler) Check(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	contentID := chi.URLParam(r, "contentId")
	if contentID == "" {
		httputil.WriteBadRequest(w, "Content id is required")
		return
	}

	exists, err := h.watchLaterService.Check(r.Context(), user.ID, contentID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to check watch later")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"in_watch_later": exists})
}

// Remove deletes one entry by content id
// DELETE /watch-later/{contentId}
func (h *WatchLaterHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	contentID := chi.URLParam(r, "contentId")
	if contentID == "" {
		httputil.WriteBadRequest(w, "Content id is required")
		return
	}

	if err := h.watchLaterService.Remove(r.Context(), user.ID, contentID); err != nil {
		if errors.Is(err, model.ErrWatchLaterNotFound) {
			httputil.WriteNotFound(w, "Watch later entry not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to remove from watch later")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Removed from watch later"})
}

// Clear deletes all of the caller's watch-later entries
// DELETE /watch-later
func (h *WatchLaterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	deleted, err := h.watchLaterService.Clear(r.Context(), user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to clear watch later")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"deleted_count": deleted})
}
