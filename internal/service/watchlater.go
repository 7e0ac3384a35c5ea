package service

import (
	"context"

	"mediahub/internal/model"
	"mediahub/internal/repository"
)

// WatchLaterService manages a user's watch-later list. The semantics
// mirror favorites: add rejects duplicates, entries are immutable
// snapshots until removed.
type WatchLaterService struct {
	watchLaterRepo repository.WatchLaterRepository
}

func NewWatchLaterService(watchLaterRepo repository.WatchLaterRepository) *WatchLaterService {
	return &WatchLaterService{watchLaterRepo: watchLaterRepo}
}

// Add puts a content item into the user's watch-later list.
func (s *WatchLaterService) Add(ctx context.Context, userID int64, req *model.CreateWatchLaterRequest) (*model.WatchLater, error) {
	_, err := s.watchLaterRepo.GetByKey(ctx, userID, req.ContentType, req.ContentID)
	if err == nil {
		return nil, model.ErrWatchLaterExists
	}
	if err != model.ErrWatchLaterNotFound {
		return nil, err
	}

	entry := &model.WatchLater{
		UserID:       userID,
		ContentType:  req.ContentType,
		ContentID:    req.ContentID,
		ContentTitle: req.ContentTitle,
		ContentThumb: req.ContentThumb,
		ContentSlug:  req.ContentSlug,
	}

	if err := s.watchLaterRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns a page of the user's watch-later entries, newest first.
func (s *WatchLaterService) List(ctx context.Context, userID int64, contentType *model.ContentType, page, limit int) (*model.Page[model.WatchLater], error) {
	offset := (page - 1) * limit
	items, total, err := s.watchLaterRepo.ListByUser(ctx, userID, contentType, offset, limit)
	if err != nil {
		return nil, err
	}

	return model.NewPage(items, total, page, limit), nil
}

// Check reports whether a content item is in the user's watch-later list.
func (s *WatchLaterService) Check(ctx context.Context, userID int64, contentID string) (bool, error) {
	return s.watchLaterRepo.Exists(ctx, userID, contentID)
}

// Remove deletes a watch-later entry by content id.
func (s *WatchLaterService) Remove(ctx context.Context, userID int64, contentID string) error {
	deleted, err := s.watchLaterRepo.Delete(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrWatchLaterNotFound
	}
	return nil
}

// Clear removes all of the user's watch-later entries and returns the count.
func (s *WatchLaterService) Clear(ctx context.Context, userID int64) (int64, error) {
	return s.watchLaterRepo.Clear(ctx, userID)
}
