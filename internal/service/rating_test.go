package service

import (
	"context"
	"errors"
	"testing"

	"mediahub/internal/model"
	"mediahub/internal/queue"
)

type mockRatingRepository struct {
	upsertFn    func(ctx context.Context, r *model.Rating) error
	getByKeyFn  func(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Rating, error)
	listStarsFn func(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error)
	deleteFn    func(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (bool, error)
}

func (m *mockRatingRepository) Upsert(ctx context.Context, r *model.Rating) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, r)
	}
	r.ID = 1
	return nil
}

func (m *mockRatingRepository) GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Rating, error) {
	if m.getByKeyFn != nil {
		return m.getByKeyFn(ctx, userID, contentType, contentID)
	}
	return nil, model.ErrRatingNotFound
}

func (m *mockRatingRepository) ListStars(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error) {
	if m.listStarsFn != nil {
		return m.listStarsFn(ctx, contentType, contentID)
	}
	return nil, nil
}

func (m *mockRatingRepository) Delete(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, contentType, contentID)
	}
	return false, nil
}

type mockStatsCache struct {
	getFn func(ctx context.Context, contentType model.ContentType, contentID string) (*model.RatingStats, error)

	setCalls        int
	invalidateCalls int
	lastSet         *model.RatingStats
}

func (m *mockStatsCache) Get(ctx context.Context, contentType model.ContentType, contentID string) (*model.RatingStats, error) {
	if m.getFn != nil {
		return m.getFn(ctx, contentType, contentID)
	}
	return nil, nil
}

func (m *mockStatsCache) Set(ctx context.Context, contentType model.ContentType, contentID string, stats *model.RatingStats) error {
	m.setCalls++
	m.lastSet = stats
	return nil
}

func (m *mockStatsCache) Invalidate(ctx context.Context, contentType model.ContentType, contentID string) error {
	m.invalidateCalls++
	return nil
}

type mockPublisher struct {
	published []queue.RatingEvent
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.RatingEvent) (string, error) {
	m.published = append(m.published, event)
	return "1-0", nil
}

func TestRatingService_Rate_OverwriteAndInvalidate(t *testing.T) {
	stored := map[string]int{}
	mockRepo := &mockRatingRepository{
		upsertFn: func(ctx context.Context, r *model.Rating) error {
			r.ID = 1
			stored[r.ContentID] = r.Stars
			return nil
		},
	}
	mockCache := &mockStatsCache{}
	mockPub := &mockPublisher{}
	svc := NewRatingService(mockRepo, mockCache, mockPub)

	// First submission, then an overwrite for the same key.
	for _, stars := range []int{4, 2} {
		rating, err := svc.Rate(context.Background(), 1, &model.CreateRatingRequest{
			ContentType: model.ContentTypeMovie,
			ContentID:   "movie-1",
			Stars:       stars,
		})
		if err != nil {
			t.Fatalf("rate with %d stars: %v", stars, err)
		}
		if rating.Stars != stars {
			t.Errorf("stars = %d, want %d", rating.Stars, stars)
		}
	}

	if stored["movie-1"] != 2 {
		t.Errorf("stored stars = %d, want overwrite to 2", stored["movie-1"])
	}
	if mockCache.invalidateCalls != 2 {
		t.Errorf("Invalidate called %d times, want 2", mockCache.invalidateCalls)
	}
	if len(mockPub.published) != 2 || mockPub.published[0].Type != queue.EventRatingUpserted {
		t.Errorf("published = %+v, want 2 upsert events", mockPub.published)
	}
}

func TestRatingService_GetContentStats_Empty(t *testing.T) {
	svc := NewRatingService(&mockRatingRepository{}, &mockStatsCache{}, &mockPublisher{})

	stats, err := svc.GetContentStats(context.Background(), model.ContentTypeMovie, "nobody-rated")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if stats.AverageRating != 0 || stats.TotalRatings != 0 {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
	for star := 1; star <= 5; star++ {
		if count, ok := stats.Distribution[star]; !ok || count != 0 {
			t.Errorf("distribution[%d] = %d (present=%t), want 0", star, count, ok)
		}
	}
}

func TestRatingService_GetContentStats_Computed(t *testing.T) {
	mockRepo := &mockRatingRepository{
		listStarsFn: func(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error) {
			return []int{3, 3, 4, 5, 5}, nil
		},
	}
	mockCache := &mockStatsCache{}
	svc := NewRatingService(mockRepo, mockCache, &mockPublisher{})

	stats, err := svc.GetContentStats(context.Background(), model.ContentTypeMovie, "movie-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if stats.AverageRating != 4.0 {
		t.Errorf("average = %v, want 4.0", stats.AverageRating)
	}
	if stats.TotalRatings != 5 {
		t.Errorf("total = %d, want 5", stats.TotalRatings)
	}
	want := map[int]int64{1: 0, 2: 0, 3: 2, 4: 1, 5: 2}
	for star, count := range want {
		if stats.Distribution[star] != count {
			t.Errorf("distribution[%d] = %d, want %d", star, stats.Distribution[star], count)
		}
	}

	// The computed stats are warmed into the cache on a miss.
	if mockCache.setCalls != 1 {
		t.Errorf("Set called %d times, want 1", mockCache.setCalls)
	}
}

func TestRatingService_GetContentStats_CacheHit(t *testing.T) {
	cached := &model.RatingStats{AverageRating: 4.5, TotalRatings: 2, Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 1, 5: 1}}
	mockCache := &mockStatsCache{
		getFn: func(ctx context.Context, contentType model.ContentType, contentID string) (*model.RatingStats, error) {
			return cached, nil
		},
	}
	mockRepo := &mockRatingRepository{
		listStarsFn: func(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error) {
			t.Error("ListStars should not run on a cache hit")
			return nil, nil
		},
	}
	svc := NewRatingService(mockRepo, mockCache, &mockPublisher{})

	stats, err := svc.GetContentStats(context.Background(), model.ContentTypeMovie, "movie-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stats.AverageRating != 4.5 {
		t.Errorf("average = %v, want cached 4.5", stats.AverageRating)
	}
}

func TestRatingService_Remove_NotFound(t *testing.T) {
	mockCache := &mockStatsCache{}
	mockPub := &mockPublisher{}
	svc := NewRatingService(&mockRatingRepository{}, mockCache, mockPub)

	err := svc.Remove(context.Background(), 1, model.ContentTypeMovie, "movie-1")

	if !errors.Is(err, model.ErrRatingNotFound) {
		t.Errorf("error = %v, want ErrRatingNotFound", err)
	}
	if mockCache.invalidateCalls != 0 || len(mockPub.published) != 0 {
		t.Error("no invalidation or event expected for a missing rating")
	}
}

func TestComputeRatingStats_RoundHalfUp(t *testing.T) {
	tests := []struct {
		name  string
		stars []int
		want  float64
	}{
		{"exact", []int{4, 4}, 4.0},
		{"round up at half", []int{1, 2}, 1.5},
		{"two thirds rounds up", []int{4, 5, 5}, 4.7},
		{"one third rounds down", []int{4, 4, 5}, 4.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := model.ComputeRatingStats(tt.stars)
			if stats.AverageRating != tt.want {
				t.Errorf("average = %v, want %v", stats.AverageRating, tt.want)
			}
		})
	}
}
