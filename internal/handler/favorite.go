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

// FavoriteHandler groups favorites endpoints. All of them require auth.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add puts a content item into the caller's favorites
// POST /favorites
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreateFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	favorite, err := h.favoriteService.Add(r.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, model.ErrFavoriteExists) {
			httputil.WriteConflict(w, "Content is already in favorites")
			return
		}
		httputil.WriteInternalError(w, "Failed to add favorite")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, favorite)
}

// List returns a page of the caller's favorites
// GET /favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.favoriteService.List(r.Context(), user.ID, contentType, page, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list favorites")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Check reports whether a content item is favorited
// GET /favorites/check/{contentId}
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
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

	exists, err := h.favoriteService.Check(r.Context(), user.ID, contentID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to check favorite")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"is_favorite": exists})
}

// Remove deletes one favorite by content id
// DELETE /favorites/{contentId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.favoriteService.Remove(r.Context(), user.ID, contentID); err != nil {
		if errors.Is(err, model.ErrFavoriteNotFound) {
			httputil.WriteNotFound(w, "Favorite not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to remove favorite")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Favorite removed"})
}

// Clear deletes all of the caller's favorites
// DELETE /favorites
func (h *FavoriteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	deleted, err := h.favoriteService.Clear(r.Context(), user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to clear favorites")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"deleted_count": deleted})
}
