package model

import (
	"errors"
	"time"
)

// WatchHistory tracks how far a user got through a content item.
// At most one row exists per (user, content id); progress updates merge
// into the existing row instead of creating new ones.
type WatchHistory struct {
	ID            int64       `db:"id" json:"id"`
	UserID        int64       `db:"user_id" json:"user_id"`
	ContentType   ContentType `db:"content_type" json:"content_type"`
	ContentID     string      `db:"content_id" json:"content_id"`
	ContentTitle  string      `db:"content_title" json:"content_title"`
	ContentSlug   string      `db:"content_slug" json:"content_slug"`
	ContentThumb  string      `db:"content_thumb" json:"content_thumb"`
	EpisodeID     string      `db:"episode_id" json:"episode_id"`
	EpisodeName   string      `db:"episode_name" json:"episode_name"`
	ChapterID     string      `db:"chapter_id" json:"chapter_id"`
	ChapterName   string      `db:"chapter_name" json:"chapter_name"`
	WatchTime     int         `db:"watch_time" json:"watch_time"`         // Seconds watched
	TotalDuration int         `db:"total_duration" json:"total_duration"` // Seconds total
	LastWatchedAt time.Time   `db:"last_watched_at" json:"last_watched_at"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// UpsertWatchHistoryRequest is the request body for POST /watch-history.
// WatchTime and TotalDuration are pointers so an explicit 0 is
// distinguishable from an absent field; string fields are merged only
// when non-empty.
type UpsertWatchHistoryRequest struct {
	ContentType   ContentType `json:"content_type" validate:"required,oneof=movie comic"`
	ContentID     string      `json:"content_id" validate:"required"`
	ContentTitle  string      `json:"content_title" validate:"required"`
	ContentSlug   string      `json:"content_slug"`
	ContentThumb  string      `json:"content_thumb"`
	EpisodeID     string      `json:"episode_id"`
	EpisodeName   string      `json:"episode_name"`
	ChapterID     string      `json:"chapter_id"`
	ChapterName   string      `json:"chapter_name"`
	WatchTime     *int        `json:"watch_time" validate:"omitempty,min=0"`
	TotalDuration *int        `json:"total_duration" validate:"omitempty,min=0"`
}

// UpdateWatchHistoryRequest is the request body for PUT /watch-history/{contentId}.
// All fields optional; same merge rules as the upsert.
type UpdateWatchHistoryRequest struct {
	EpisodeID     string `json:"episode_id"`
	EpisodeName   string `json:"episode_name"`
	ChapterID     string `json:"chapter_id"`
	ChapterName   string `json:"chapter_name"`
	ContentThumb  string `json:"content_thumb"`
	WatchTime     *int   `json:"watch_time" validate:"omitempty,min=0"`
	TotalDuration *int   `json:"total_duration" validate:"omitempty,min=0"`
}

// Watch history errors
var (
	ErrWatchHistoryNotFound = errors.New("watch history not found")
)
