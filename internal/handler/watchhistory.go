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

// WatchHistoryHandler groups watch-history endpoints. All require auth.
type WatchHistoryHandler struct {
	historyService *service.WatchHistoryService
}

func NewWatchHistoryHandler(historyService *service.WatchHistoryService) *WatchHistoryHandler {
	return &WatchHistoryHandler{historyService: historyService}
}

// Upsert records progress, creating or merging the row
// POST /watch-history
func (h *WatchHistoryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UpsertWatchHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	entry, err := h.historyService.Upsert(r.Context(), user.ID, &req)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to record watch history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, entry)
}

// List returns a page of the caller's history, most recent first
// GET /watch-history
func (h *WatchHistoryHandler) List(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.historyService.List(r.Context(), user.ID, contentType, page, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list watch history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Get returns the progress row for one content item
// GET /watch-history/{contentId}
func (h *WatchHistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	entry, err := h.historyService.Get(r.Context(), user.ID, contentID)
	if err != nil {
		if errors.Is(err, model.ErrWatchHistoryNotFound) {
			httputil.WriteNotFound(w, "Watch history not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get watch history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, entry)
}

// Update merges progress into an existing row
// PUT /watch-history/{contentId}
func (h *WatchHistoryHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req model.UpdateWatchHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	entry, err := h.historyService.Update(r.Context(), user.ID, contentID, &req)
	if err != nil {
		if errors.Is(err, model.ErrWatchHistoryNotFound) {
			httputil.WriteNotFound(w, "Watch history not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to update watch history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, entry)
}

// Remove deletes one history row by content id
// DELETE /watch-history/{contentId}
func (h *WatchHistoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.historyService.Remove(r.Context(), user.ID, contentID); err != nil {
		if errors.Is(err, model.ErrWatchHistoryNotFound) {
			httputil.WriteNotFound(w, "Watch history not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to remove watch history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Watch history removed"})
}

// Clear wipes the caller's history, optionally one content type only
// DELETE /watch-history
func (h *WatchHistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := h.historyService.Clear(r.Context(), user.ID, contentType)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to clear watch history")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"deleted_count": deleted})
}
