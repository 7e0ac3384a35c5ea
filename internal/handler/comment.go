package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mediahub/internal/httputil"
	"mediahub/internal/model"
	"mediahub/internal/service"
	"mediahub/internal/transport/http/middleware"
	"mediahub/internal/validation"
)

// CommentHandler groups comment endpoints. Listings and likes are
// public; create/edit/delete require auth.
type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create posts a comment or a reply
// POST /comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	comment, err := h.commentService.Create(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		case errors.Is(err, model.ErrInvalidParent):
			httputil.WriteBadRequest(w, "Parent comment invalid for this content")
		default:
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// List returns a page of top-level comments for a content item
// GET /comments?content_type=movie&content_id=abc
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
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

	page, limit := httputil.ParsePageLimit(r)

	result, err := h.commentService.List(r.Context(), contentType, contentID, page, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListReplies returns a page of replies under a parent comment
// GET /comments/replies/{parentId}
func (h *CommentHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	parentID, err := strconv.ParseInt(chi.URLParam(r, "parentId"), 10, 64)
	if err != nil || parentID <= 0 {
		httputil.WriteBadRequest(w, "Invalid parent id")
		return
	}

	page, limit := httputil.ParsePageLimit(r)

	result, err := h.commentService.ListReplies(r.Context(), parentID, page, limit)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list replies")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Update edits the caller's own comment
// PUT /comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || commentID <= 0 {
		httputil.WriteBadRequest(w, "Invalid comment id")
		return
	}

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	comment, err := h.commentService.Update(r.Context(), user.ID, commentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only edit your own comments")
		default:
			httputil.WriteInternalError(w, "Failed to update comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Delete soft-deletes the caller's own comment
// DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || commentID <= 0 {
		httputil.WriteBadRequest(w, "Invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), user.ID, commentID); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only delete your own comments")
		default:
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

// Like shifts a comment's like counter
// POST /comments/{id}/like
func (h *CommentHandler) Like(w http.ResponseWriter, r *http.Request) {
	commentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || commentID <= 0 {
		httputil.WriteBadRequest(w, "Invalid comment id")
		return
	}

	// Default to a like when the body is empty.
	req := model.LikeCommentRequest{Like: true}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return
		}
	}

	comment, err := h.commentService.Like(r.Context(), commentID, req.Like)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to update likes")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"likes": comment.Likes})
}
