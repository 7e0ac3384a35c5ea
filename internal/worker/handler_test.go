package worker

import (
	"context"
	"errors"
	"testing"

	"mediahub/internal/model"
	"mediahub/internal/queue"
)

type mockStarsProvider struct {
	listStarsFn func(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error)

	calls int
}

func (m *mockStarsProvider) ListStars(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error) {
	m.calls++
	if m.listStarsFn != nil {
		return m.listStarsFn(ctx, contentType, contentID)
	}
	return nil, nil
}

type mockStatsCache struct {
	setFn func(ctx context.Context, contentType model.ContentType, contentID string, stats *model.RatingStats) error

	setCalls int
	lastSet  *model.RatingStats
}

func (m *mockStatsCache) Get(ctx context.Context, contentType model.ContentType, contentID string) (*model.RatingStats, error) {
	return nil, nil
}

func (m *mockStatsCache) Set(ctx context.Context, contentType model.ContentType, contentID string, stats *model.RatingStats) error {
	m.setCalls++
	m.lastSet = stats
	if m.setFn != nil {
		return m.setFn(ctx, contentType, contentID, stats)
	}
	return nil
}

func (m *mockStatsCache) Invalidate(ctx context.Context, contentType model.ContentType, contentID string) error {
	return nil
}

func upsertEvent(contentID string, stars int) queue.RatingEvent {
	return queue.RatingEvent{
		Type:        queue.EventRatingUpserted,
		UserID:      1,
		ContentType: model.ContentTypeMovie,
		ContentID:   contentID,
		Stars:       stars,
	}
}

func TestHandler_HandleEvent_RefreshesStats(t *testing.T) {
	provider := &mockStarsProvider{
		listStarsFn: func(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error) {
			return []int{4, 5, 5}, nil
		},
	}
	statsCache := &mockStatsCache{}
	handler := NewHandler(statsCache, provider)

	if err := handler.HandleEvent(context.Background(), upsertEvent("movie-1", 5)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if statsCache.setCalls != 1 {
		t.Fatalf("Set called %d times, want 1", statsCache.setCalls)
	}
	if statsCache.lastSet.AverageRating != 4.7 || statsCache.lastSet.TotalRatings != 3 {
		t.Errorf("warmed stats = %+v, want avg 4.7 total 3", statsCache.lastSet)
	}
}

func TestHandler_HandleEvent_DeleteAlsoRecomputes(t *testing.T) {
	// Delete events run the same recompute path, so the last rating's
	// removal warms the cache with zeroed stats.
	provider := &mockStarsProvider{}
	statsCache := &mockStatsCache{}
	handler := NewHandler(statsCache, provider)

	event := upsertEvent("movie-1", 0)
	event.Type = queue.EventRatingDeleted

	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if provider.calls != 1 || statsCache.setCalls != 1 {
		t.Errorf("calls = %d/%d, want recompute and warm", provider.calls, statsCache.setCalls)
	}
	if statsCache.lastSet.TotalRatings != 0 {
		t.Errorf("total = %d, want 0", statsCache.lastSet.TotalRatings)
	}
}

func TestHandler_HandleEvent_UnknownType(t *testing.T) {
	handler := NewHandler(&mockStatsCache{}, &mockStarsProvider{})

	err := handler.HandleEvent(context.Background(), queue.RatingEvent{Type: "something_else"})

	if err == nil {
		t.Fatal("expected error for unknown event type")
	}
}

func TestHandler_HandleEvent_ProviderError(t *testing.T) {
	wantErr := errors.New("storage down")
	provider := &mockStarsProvider{
		listStarsFn: func(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error) {
			return nil, wantErr
		},
	}
	statsCache := &mockStatsCache{}
	handler := NewHandler(statsCache, provider)

	err := handler.HandleEvent(context.Background(), upsertEvent("movie-1", 3))

	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
	if statsCache.setCalls != 0 {
		t.Error("cache must not be warmed when the recompute fails")
	}
}
