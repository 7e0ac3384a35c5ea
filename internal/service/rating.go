package service

import (
	"context"
	"log"

	"mediahub/internal/cache"
	"mediahub/internal/model"
	"mediahub/internal/queue"
	"mediahub/internal/repository"
)

// RatingService manages star ratings and their public aggregates.
// Writes invalidate the stats cache synchronously and publish an event
// so a worker re-warms it; reads fall through to storage on a miss, so
// stats are correct even with Redis down.
type RatingService struct {
	ratingRepo repository.RatingRepository
	statsCache cache.StatsCache
	publisher  queue.Publisher
}

func NewRatingService(ratingRepo repository.RatingRepository, statsCache cache.StatsCache, publisher queue.Publisher) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		statsCache: statsCache,
		publisher:  publisher,
	}
}

// Rate submits or overwrites the caller's rating for a content item.
func (s *RatingService) Rate(ctx context.Context, userID int64, req *model.CreateRatingRequest) (*model.Rating, error) {
	rating := &model.Rating{
		UserID:      userID,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Stars:       req.Stars,
	}

	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, queue.NewRatingUpsertedEvent(userID, req.ContentType, req.ContentID, req.Stars))

	return rating, nil
}

// GetUserRating returns the caller's own rating for a content item.
func (s *RatingService) GetUserRating(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Rating, error) {
	return s.ratingRepo.GetByKey(ctx, userID, contentType, contentID)
}

// GetContentStats returns the public aggregate for a content item,
// served from cache when warm.
func (s *RatingService) GetContentStats(ctx context.Context, contentType model.ContentType, contentID string) (*model.RatingStats, error) {
	if cached, err := s.statsCache.Get(ctx, contentType, contentID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("[RatingService] stats cache read failed: %v", err)
	}

	stars, err := s.ratingRepo.ListStars(ctx, contentType, contentID)
	if err != nil {
		return nil, err
	}

	stats := model.ComputeRatingStats(stars)

	if err := s.statsCache.Set(ctx, contentType, contentID, &stats); err != nil {
		log.Printf("[RatingService] stats cache warm failed: %v", err)
	}

	return &stats, nil
}

// Remove deletes the caller's rating for a content item.
func (s *RatingService) Remove(ctx context.Context, userID int64, contentType model.ContentType, contentID string) error {
	deleted, err := s.ratingRepo.Delete(ctx, userID, contentType, contentID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrRatingNotFound
	}

	s.afterWrite(ctx, queue.NewRatingDeletedEvent(userID, contentType, contentID))

	return nil
}

// afterWrite invalidates the stats cache and publishes the event.
// Both are best effort: the rating row is already durable and reads
// recompute from storage on a cache miss.
func (s *RatingService) afterWrite(ctx context.Context, event queue.RatingEvent) {
	if err := s.statsCache.Invalidate(ctx, event.ContentType, event.ContentID); err != nil {
		log.Printf("[RatingService] stats cache invalidate failed: %v", err)
	}
	if _, err := s.publisher.Publish(ctx, queue.StreamRatings, event); err != nil {
		log.Printf("[RatingService] publish rating event failed: %v", err)
	}
}
