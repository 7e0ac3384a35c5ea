package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mediahub/internal/httputil"
	"mediahub/internal/model"
	"mediahub/internal/service"
	"mediahub/internal/transport/http/middleware"
	"mediahub/internal/validation"
)

// UserHandler groups profile endpoints.
type UserHandler struct {
	userService  *service.UserService
	mediaService *service.MediaService
}

// NewUserHandler wires dependencies for profile endpoints.
// mediaService may be nil when object storage is not configured; avatar
// uploads then return 503.
func NewUserHandler(userService *service.UserService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

// Me returns the currently authenticated user
// GET /me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), authUser.ID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// GetByID returns a public profile
// GET /users/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteBadRequest(w, "Invalid user id")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	})
}

// UpdateProfile patches the caller's profile
// PATCH /me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), authUser.ID, &req)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to update profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// UploadAvatar replaces the caller's avatar
// POST /me/avatar
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if h.mediaService == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, httputil.ErrCodeInternal, "Avatar uploads are not available")
		return
	}

	maxFormSize := int64(model.MaxAvatarSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Avatar exceeds 5MB limit")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "Avatar file is required")
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadAvatar(r.Context(), file, header)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Avatar exceeds 5MB limit")
		case errors.Is(err, model.ErrInvalidImageType):
			httputil.WriteBadRequestWithCode(w, model.CodeInvalidImageType, "Unsupported image type. Allowed: jpeg, png, gif, webp")
		default:
			httputil.WriteInternalError(w, "Failed to upload avatar")
		}
		return
	}

	// Look up the old key before overwriting so the orphan can be removed.
	var oldKey string
	if current, err := h.userService.GetByID(r.Context(), authUser.ID); err == nil && current.AvatarKey != nil {
		oldKey = *current.AvatarKey
	}

	user, err := h.userService.UpdateAvatar(r.Context(), authUser.ID, upload.URL, upload.Key)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to update avatar")
		return
	}

	if oldKey != "" && oldKey != upload.Key {
		// Best effort: the new avatar is already live, a leftover object
		// just wastes space.
		if err := h.mediaService.DeleteObject(r.Context(), oldKey); err != nil {
			log.Printf("[UserHandler] delete old avatar failed: key=%s err=%v", oldKey, err)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
