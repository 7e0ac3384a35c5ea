package model

import (
	"errors"
	"time"
)

// Comment represents a user comment on a content item.
// Comments form a two-level tree: top-level comments have ParentID nil,
// replies reference a top-level comment. Deletion is a soft delete:
// IsActive flips to false and the row stays in storage, invisible to
// listings but still reachable by id.
type Comment struct {
	ID          int64        `db:"id" json:"id"`
	UserID      int64        `db:"user_id" json:"-"`
	ContentType ContentType  `db:"content_type" json:"content_type"`
	ContentID   string       `db:"content_id" json:"content_id"`
	Content     string       `db:"content" json:"content"`
	ParentID    *int64       `db:"parent_id" json:"parent_id,omitempty"`
	Likes       int          `db:"likes" json:"likes"`
	IsEdited    bool         `db:"is_edited" json:"is_edited"`
	IsActive    bool         `db:"is_active" json:"-"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
	Author      *UserSummary `json:"author,omitempty"`  // Joined field
	Replies     []Comment    `json:"replies,omitempty"` // First replies, listings only
}

// CreateCommentRequest is the request body for POST /comments.
type CreateCommentRequest struct {
	ContentType ContentType `json:"content_type" validate:"required,oneof=movie comic"`
	ContentID   string      `json:"content_id" validate:"required"`
	Content     string      `json:"content" validate:"required,max=1000"`
	ParentID    *int64      `json:"parent_id,omitempty"`
}

// UpdateCommentRequest is the request body for PUT /comments/{id}.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// LikeCommentRequest is the request body for POST /comments/{id}/like.
// Like=false decrements; the counter never goes below zero.
type LikeCommentRequest struct {
	Like bool `json:"like"`
}

// Comment constraints
const (
	MaxCommentLength = 1000
	RepliesPreview   = 5 // Replies attached to each comment in listings
)

// Comment errors
var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the owner of this comment")
	ErrInvalidParent   = errors.New("parent comment invalid for this content")
)
