package model

import (
	"errors"
	"time"
)

// Favorite marks a content item a user keeps in their favorites list.
// At most one row exists per (user, content type, content id).
type Favorite struct {
	ID           int64       `db:"id" json:"id"`
	UserID       int64       `db:"user_id" json:"user_id"`
	ContentType  ContentType `db:"content_type" json:"content_type"`
	ContentID    string      `db:"content_id" json:"content_id"`
	ContentTitle string      `db:"content_title" json:"content_title"`
	ContentThumb string      `db:"content_thumb" json:"content_thumb"`
	ContentSlug  string      `db:"content_slug" json:"content_slug"`
	AddedAt      time.Time   `db:"added_at" json:"added_at"`
}

// CreateFavoriteRequest is the request body for POST /favorites.
type CreateFavoriteRequest struct {
	ContentType  ContentType `json:"content_type" validate:"required,oneof=movie comic"`
	ContentID    string      `json:"content_id" validate:"required"`
	ContentTitle string      `json:"content_title" validate:"required"`
	ContentThumb string      `json:"content_thumb"`
	ContentSlug  string      `json:"content_slug"`
}

// Favorite errors
var (
	ErrFavoriteExists   = errors.New("content is already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
