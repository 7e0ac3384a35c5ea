package service

import (
	"context"
	"errors"
	"testing"

	"mediahub/internal/model"
)

type mockFavoriteRepository struct {
	getByKeyFn   func(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Favorite, error)
	insertFn     func(ctx context.Context, f *model.Favorite) error
	listByUserFn func(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.Favorite, int64, error)
	existsFn     func(ctx context.Context, userID int64, contentID string) (bool, error)
	deleteFn     func(ctx context.Context, userID int64, contentID string) (bool, error)
	clearFn      func(ctx context.Context, userID int64) (int64, error)

	insertCalls int
}

func (m *mockFavoriteRepository) GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Favorite, error) {
	if m.getByKeyFn != nil {
		return m.getByKeyFn(ctx, userID, contentType, contentID)
	}
	return nil, model.ErrFavoriteNotFound
}

func (m *mockFavoriteRepository) Insert(ctx context.Context, f *model.Favorite) error {
	m.insertCalls++
	if m.insertFn != nil {
		return m.insertFn(ctx, f)
	}
	f.ID = int64(m.insertCalls)
	return nil
}

func (m *mockFavoriteRepository) ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.Favorite, int64, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, contentType, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockFavoriteRepository) Exists(ctx context.Context, userID int64, contentID string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, contentID)
	}
	return false, nil
}

func (m *mockFavoriteRepository) Delete(ctx context.Context, userID int64, contentID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, contentID)
	}
	return false, nil
}

func (m *mockFavoriteRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	if m.clearFn != nil {
		return m.clearFn(ctx, userID)
	}
	return 0, nil
}

func TestFavoriteService_Add_Success(t *testing.T) {
	mockRepo := &mockFavoriteRepository{}
	svc := NewFavoriteService(mockRepo)

	favorite, err := svc.Add(context.Background(), 1, &model.CreateFavoriteRequest{
		ContentType:  model.ContentTypeMovie,
		ContentID:    "movie-1",
		ContentTitle: "Some Movie",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if favorite.UserID != 1 || favorite.ContentID != "movie-1" {
		t.Errorf("favorite = %+v, want user 1 / content movie-1", favorite)
	}
	if mockRepo.insertCalls != 1 {
		t.Errorf("Insert called %d times, want 1", mockRepo.insertCalls)
	}
}

func TestFavoriteService_Add_DuplicateConflict(t *testing.T) {
	// A second add for the same key must conflict and leave the stored
	// row alone.
	existing := &model.Favorite{ID: 7, UserID: 1, ContentType: model.ContentTypeMovie, ContentID: "movie-1", ContentTitle: "Original Title"}
	mockRepo := &mockFavoriteRepository{
		getByKeyFn: func(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Favorite, error) {
			return existing, nil
		},
	}
	svc := NewFavoriteService(mockRepo)

	_, err := svc.Add(context.Background(), 1, &model.CreateFavoriteRequest{
		ContentType:  model.ContentTypeMovie,
		ContentID:    "movie-1",
		ContentTitle: "Different Title",
	})

	if !errors.Is(err, model.ErrFavoriteExists) {
		t.Errorf("error = %v, want ErrFavoriteExists", err)
	}
	if mockRepo.insertCalls != 0 {
		t.Errorf("Insert called %d times, want 0", mockRepo.insertCalls)
	}
	if existing.ContentTitle != "Original Title" {
		t.Errorf("stored title mutated to %q", existing.ContentTitle)
	}
}

func TestFavoriteService_Add_RaceBackstop(t *testing.T) {
	// When two adds race past the existence check, the storage unique
	// constraint surfaces as the same conflict error.
	mockRepo := &mockFavoriteRepository{
		insertFn: func(ctx context.Context, f *model.Favorite) error {
			return model.ErrFavoriteExists
		},
	}
	svc := NewFavoriteService(mockRepo)

	_, err := svc.Add(context.Background(), 1, &model.CreateFavoriteRequest{
		ContentType:  model.ContentTypeComic,
		ContentID:    "comic-9",
		ContentTitle: "Some Comic",
	})

	if !errors.Is(err, model.ErrFavoriteExists) {
		t.Errorf("error = %v, want ErrFavoriteExists", err)
	}
}

func TestFavoriteService_Remove_NotFound(t *testing.T) {
	svc := NewFavoriteService(&mockFavoriteRepository{})

	err := svc.Remove(context.Background(), 1, "missing")

	if !errors.Is(err, model.ErrFavoriteNotFound) {
		t.Errorf("error = %v, want ErrFavoriteNotFound", err)
	}
}

func TestFavoriteService_List_PaginationEnvelope(t *testing.T) {
	mockRepo := &mockFavoriteRepository{
		listByUserFn: func(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.Favorite, int64, error) {
			if offset != 40 || limit != 20 {
				t.Errorf("offset/limit = %d/%d, want 40/20", offset, limit)
			}
			return []model.Favorite{{ID: 41}, {ID: 42}, {ID: 43}, {ID: 44}, {ID: 45}}, 45, nil
		},
	}
	svc := NewFavoriteService(mockRepo)

	page, err := svc.List(context.Background(), 1, nil, 3, 20)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if page.TotalItems != 45 {
		t.Errorf("total_items = %d, want 45", page.TotalItems)
	}
	if page.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", page.TotalPages)
	}
	if page.CurrentPage != 3 {
		t.Errorf("current_page = %d, want 3", page.CurrentPage)
	}
	if len(page.Items) != 5 {
		t.Errorf("items = %d, want 5", len(page.Items))
	}
}
