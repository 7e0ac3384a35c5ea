package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"mediahub/internal/cache"
	"mediahub/internal/model"
	"mediahub/internal/queue"
)

// StarsProvider defines the interface for fetching raw star values.
// This abstracts the repository layer so workers don't depend on DB directly.
type StarsProvider interface {
	// ListStars returns every star value recorded for a content item.
	ListStars(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error)
}

// Handler processes rating events from the queue.
// Every event triggers the same work: recompute the content item's stats
// from storage and warm the cache, so late or duplicate deliveries are
// harmless.
type Handler struct {
	statsCache    cache.StatsCache
	starsProvider StarsProvider
}

// NewHandler creates a new event handler.
func NewHandler(statsCache cache.StatsCache, starsProvider StarsProvider) *Handler {
	return &Handler{
		statsCache:    statsCache,
		starsProvider: starsProvider,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.RatingEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventRatingUpserted, queue.EventRatingDeleted:
		err = h.refreshStats(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s duration=%v", event.Type, time.Since(startTime))
	return nil
}

// refreshStats recomputes stats from storage and warms the cache.
func (h *Handler) refreshStats(ctx context.Context, event queue.RatingEvent) error {
	log.Printf("[Worker] RefreshStats: content=%s:%s", event.ContentType, event.ContentID)

	stars, err := h.starsProvider.ListStars(ctx, event.ContentType, event.ContentID)
	if err != nil {
		return fmt.Errorf("list stars: %w", err)
	}

	stats := model.ComputeRatingStats(stars)

	if err := h.statsCache.Set(ctx, event.ContentType, event.ContentID, &stats); err != nil {
		return fmt.Errorf("warm stats cache: %w", err)
	}

	log.Printf("[Worker] RefreshStats DONE: content=%s:%s total=%d avg=%.1f",
		event.ContentType, event.ContentID, stats.TotalRatings, stats.AverageRating)
	return nil
}
