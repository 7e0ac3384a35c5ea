package service

import (
	"context"
	"errors"
	"testing"

	"mediahub/internal/model"
)

type mockWatchHistoryRepository struct {
	rows map[string]*model.WatchHistory // keyed by content id, single user

	listByUserFn func(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.WatchHistory, int64, error)

	insertCalls int
	updateCalls int
}

func newMockWatchHistoryRepository() *mockWatchHistoryRepository {
	return &mockWatchHistoryRepository{rows: map[string]*model.WatchHistory{}}
}

func (m *mockWatchHistoryRepository) GetByContentID(ctx context.Context, userID int64, contentID string) (*model.WatchHistory, error) {
	if row, ok := m.rows[contentID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, model.ErrWatchHistoryNotFound
}

func (m *mockWatchHistoryRepository) Insert(ctx context.Context, h *model.WatchHistory) error {
	m.insertCalls++
	h.ID = int64(len(m.rows) + 1)
	copied := *h
	m.rows[h.ContentID] = &copied
	return nil
}

func (m *mockWatchHistoryRepository) Update(ctx context.Context, h *model.WatchHistory) error {
	m.updateCalls++
	copied := *h
	m.rows[h.ContentID] = &copied
	return nil
}

func (m *mockWatchHistoryRepository) ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.WatchHistory, int64, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, contentType, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockWatchHistoryRepository) Delete(ctx context.Context, userID int64, contentID string) (bool, error) {
	if _, ok := m.rows[contentID]; ok {
		delete(m.rows, contentID)
		return true, nil
	}
	return false, nil
}

func (m *mockWatchHistoryRepository) Clear(ctx context.Context, userID int64, contentType *model.ContentType) (int64, error) {
	n := int64(len(m.rows))
	m.rows = map[string]*model.WatchHistory{}
	return n, nil
}

func intPtr(v int) *int { return &v }

func TestWatchHistoryService_Upsert_CreatesThenMerges(t *testing.T) {
	mockRepo := newMockWatchHistoryRepository()
	svc := NewWatchHistoryService(mockRepo)

	_, err := svc.Upsert(context.Background(), 1, &model.UpsertWatchHistoryRequest{
		ContentType:   model.ContentTypeMovie,
		ContentID:     "movie-1",
		ContentTitle:  "Some Movie",
		EpisodeID:     "ep-1",
		EpisodeName:   "Episode 1",
		WatchTime:     intPtr(120),
		TotalDuration: intPtr(2400),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if mockRepo.insertCalls != 1 {
		t.Fatalf("Insert called %d times, want 1", mockRepo.insertCalls)
	}

	// Second submission for the same content merges, it never creates
	// a second row.
	merged, err := svc.Upsert(context.Background(), 1, &model.UpsertWatchHistoryRequest{
		ContentType:  model.ContentTypeMovie,
		ContentID:    "movie-1",
		ContentTitle: "Some Movie",
		EpisodeID:    "ep-2",
		WatchTime:    intPtr(300),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if mockRepo.insertCalls != 1 {
		t.Errorf("Insert called %d times after merge, want 1", mockRepo.insertCalls)
	}
	if len(mockRepo.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(mockRepo.rows))
	}
	if merged.EpisodeID != "ep-2" {
		t.Errorf("episode_id = %q, want merged ep-2", merged.EpisodeID)
	}
	if merged.WatchTime != 300 {
		t.Errorf("watch_time = %d, want 300", merged.WatchTime)
	}
	// Fields absent from the second request keep their stored values.
	if merged.EpisodeName != "Episode 1" {
		t.Errorf("episode_name = %q, want preserved Episode 1", merged.EpisodeName)
	}
	if merged.TotalDuration != 2400 {
		t.Errorf("total_duration = %d, want preserved 2400", merged.TotalDuration)
	}
}

func TestWatchHistoryService_Upsert_ZeroWatchTimeOverwrites(t *testing.T) {
	// An explicit watch_time of 0 is a defined value and must reset the
	// stored progress; an empty string field must not clear anything.
	mockRepo := newMockWatchHistoryRepository()
	svc := NewWatchHistoryService(mockRepo)

	_, err := svc.Upsert(context.Background(), 1, &model.UpsertWatchHistoryRequest{
		ContentType:  model.ContentTypeMovie,
		ContentID:    "movie-1",
		ContentTitle: "Some Movie",
		EpisodeName:  "Episode 1",
		WatchTime:    intPtr(500),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	merged, err := svc.Upsert(context.Background(), 1, &model.UpsertWatchHistoryRequest{
		ContentType:  model.ContentTypeMovie,
		ContentID:    "movie-1",
		ContentTitle: "Some Movie",
		EpisodeName:  "",
		WatchTime:    intPtr(0),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if merged.WatchTime != 0 {
		t.Errorf("watch_time = %d, want explicit 0", merged.WatchTime)
	}
	if merged.EpisodeName != "Episode 1" {
		t.Errorf("episode_name = %q, empty string must not clear it", merged.EpisodeName)
	}
}

func TestWatchHistoryService_Upsert_AbsentNumbersPreserved(t *testing.T) {
	mockRepo := newMockWatchHistoryRepository()
	svc := NewWatchHistoryService(mockRepo)

	_, err := svc.Upsert(context.Background(), 1, &model.UpsertWatchHistoryRequest{
		ContentType:  model.ContentTypeComic,
		ContentID:    "comic-1",
		ContentTitle: "Some Comic",
		WatchTime:    intPtr(42),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	merged, err := svc.Upsert(context.Background(), 1, &model.UpsertWatchHistoryRequest{
		ContentType:  model.ContentTypeComic,
		ContentID:    "comic-1",
		ContentTitle: "Some Comic",
		ChapterID:    "ch-2",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if merged.WatchTime != 42 {
		t.Errorf("watch_time = %d, absent field must not reset it", merged.WatchTime)
	}
	if merged.ChapterID != "ch-2" {
		t.Errorf("chapter_id = %q, want ch-2", merged.ChapterID)
	}
}

func TestWatchHistoryService_Update_MissingRow(t *testing.T) {
	svc := NewWatchHistoryService(newMockWatchHistoryRepository())

	_, err := svc.Update(context.Background(), 1, "missing", &model.UpdateWatchHistoryRequest{
		WatchTime: intPtr(10),
	})

	if !errors.Is(err, model.ErrWatchHistoryNotFound) {
		t.Errorf("error = %v, want ErrWatchHistoryNotFound", err)
	}
}
