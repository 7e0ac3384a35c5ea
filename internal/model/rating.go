package model

import (
	"errors"
	"math"
	"time"
)

// Rating is a user's star rating for a content item.
// At most one row exists per (user, content type, content id); repeated
// submissions overwrite the stars value.
type Rating struct {
	ID          int64       `db:"id" json:"id"`
	UserID      int64       `db:"user_id" json:"user_id"`
	ContentType ContentType `db:"content_type" json:"content_type"`
	ContentID   string      `db:"content_id" json:"content_id"`
	Stars       int         `db:"stars" json:"stars"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// RatingStats is the public aggregate for a content item.
// Distribution always carries all five buckets, zero-filled.
type RatingStats struct {
	AverageRating float64       `json:"average_rating"`
	TotalRatings  int64         `json:"total_ratings"`
	Distribution  map[int]int64 `json:"rating_distribution"`
}

// CreateRatingRequest is the request body for POST /ratings.
type CreateRatingRequest struct {
	ContentType ContentType `json:"content_type" validate:"required,oneof=movie comic"`
	ContentID   string      `json:"content_id" validate:"required"`
	Stars       int         `json:"stars" validate:"required,min=1,max=5"`
}

// ComputeRatingStats aggregates raw star values into public stats.
// The mean is rounded half-up to one decimal; the distribution always
// carries all five buckets even when empty.
func ComputeRatingStats(stars []int) RatingStats {
	stats := RatingStats{
		Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var sum int64
	for _, s := range stars {
		if s < MinStars || s > MaxStars {
			continue
		}
		stats.Distribution[s]++
		stats.TotalRatings++
		sum += int64(s)
	}

	if stats.TotalRatings > 0 {
		mean := float64(sum) / float64(stats.TotalRatings)
		stats.AverageRating = math.Floor(mean*10+0.5) / 10
	}

	return stats
}

// Rating constraints
const (
	MinStars = 1
	MaxStars = 5
)

// Rating errors
var (
	ErrRatingNotFound = errors.New("rating not found")
)
