package model

import (
	"errors"
	"time"
)

// WatchLater marks a content item a user has queued to watch.
// Same shape and uniqueness rule as Favorite.
type WatchLater struct {
	ID           int64       `db:"id" json:"id"`
	UserID       int64       `db:"user_id" json:"user_id"`
	ContentType  ContentType `db:"content_type" json:"content_type"`
	ContentID    string      `db:"content_id" json:"content_id"`
	ContentTitle string      `db:"content_title" json:"content_title"`
	ContentThumb string      `db:"content_thumb" json:"content_thumb"`
	ContentSlug  string      `db:"content_slug" json:"content_slug"`
	AddedAt      time.Time   `db:"added_at" json:"added_at"`
}

// CreateWatchLaterRequest is the request body for POST /watch-later.
type CreateWatchLaterRequest struct {
	ContentType  ContentType `json:"content_type" validate:"required,oneof=movie comic"`
	ContentID    string      `json:"content_id" validate:"required"`
	ContentTitle string      `json:"content_title" validate:"required"`
	ContentThumb string      `json:"content_thumb"`
	ContentSlug  string      `json:"content_slug"`
}

// Watch later errors
var (
	ErrWatchLaterExists   = errors.New("content is already in watch later list")
	ErrWatchLaterNotFound = errors.New("watch later entry not found")
)
