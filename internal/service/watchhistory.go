package service

import (
	"context"

	"mediahub/internal/model"
	"mediahub/internal/repository"
)

// WatchHistoryService tracks playback/reading progress. Repeated
// submissions for the same content merge into the one existing row:
// string fields only when non-empty, numeric fields whenever the client
// sent them, so an explicit zero resets progress.
type WatchHistoryService struct {
	historyRepo repository.WatchHistoryRepository
}

func NewWatchHistoryService(historyRepo repository.WatchHistoryRepository) *WatchHistoryService {
	return &WatchHistoryService{historyRepo: historyRepo}
}

// Upsert records progress for a content item, creating the row on first
// sight and merging on every later submission.
func (s *WatchHistoryService) Upsert(ctx context.Context, userID int64, req *model.UpsertWatchHistoryRequest) (*model.WatchHistory, error) {
	existing, err := s.historyRepo.GetByContentID(ctx, userID, req.ContentID)
	if err != nil && err != model.ErrWatchHistoryNotFound {
		return nil, err
	}

	if existing == nil {
		entry := &model.WatchHistory{
			UserID:       userID,
			ContentType:  req.ContentType,
			ContentID:    req.ContentID,
			ContentTitle: req.ContentTitle,
			ContentSlug:  req.ContentSlug,
			ContentThumb: req.ContentThumb,
			EpisodeID:    req.EpisodeID,
			EpisodeName:  req.EpisodeName,
			ChapterID:    req.ChapterID,
			ChapterName:  req.ChapterName,
		}
		if req.WatchTime != nil {
			entry.WatchTime = *req.WatchTime
		}
		if req.TotalDuration != nil {
			entry.TotalDuration = *req.TotalDuration
		}

		if err := s.historyRepo.Insert(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}

	mergeString(&existing.ContentTitle, req.ContentTitle)
	mergeString(&existing.ContentSlug, req.ContentSlug)
	mergeString(&existing.ContentThumb, req.ContentThumb)
	mergeString(&existing.EpisodeID, req.EpisodeID)
	mergeString(&existing.EpisodeName, req.EpisodeName)
	mergeString(&existing.ChapterID, req.ChapterID)
	mergeString(&existing.ChapterName, req.ChapterName)
	if req.WatchTime != nil {
		existing.WatchTime = *req.WatchTime
	}
	if req.TotalDuration != nil {
		existing.TotalDuration = *req.TotalDuration
	}

	if err := s.historyRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Update merges progress into an existing row by content id. Unlike
// Upsert it never creates a row.
func (s *WatchHistoryService) Update(ctx context.Context, userID int64, contentID string, req *model.UpdateWatchHistoryRequest) (*model.WatchHistory, error) {
	existing, err := s.historyRepo.GetByContentID(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}

	mergeString(&existing.EpisodeID, req.EpisodeID)
	mergeString(&existing.EpisodeName, req.EpisodeName)
	mergeString(&existing.ChapterID, req.ChapterID)
	mergeString(&existing.ChapterName, req.ChapterName)
	mergeString(&existing.ContentThumb, req.ContentThumb)
	if req.WatchTime != nil {
		existing.WatchTime = *req.WatchTime
	}
	if req.TotalDuration != nil {
		existing.TotalDuration = *req.TotalDuration
	}

	if err := s.historyRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Get returns the progress row for one content item.
func (s *WatchHistoryService) Get(ctx context.Context, userID int64, contentID string) (*model.WatchHistory, error) {
	return s.historyRepo.GetByContentID(ctx, userID, contentID)
}

// List returns a page of the user's history, most recently watched first.
func (s *WatchHistoryService) List(ctx context.Context, userID int64, contentType *model.ContentType, page, limit int) (*model.Page[model.WatchHistory], error) {
	offset := (page - 1) * limit
	items, total, err := s.historyRepo.ListByUser(ctx, userID, contentType, offset, limit)
	if err != nil {
		return nil, err
	}

	return model.NewPage(items, total, page, limit), nil
}

// Remove deletes a history row by content id.
func (s *WatchHistoryService) Remove(ctx context.Context, userID int64, contentID string) error {
	deleted, err := s.historyRepo.Delete(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrWatchHistoryNotFound
	}
	return nil
}

// Clear removes the user's history, optionally one content type only.
func (s *WatchHistoryService) Clear(ctx context.Context, userID int64, contentType *model.ContentType) (int64, error) {
	return s.historyRepo.Clear(ctx, userID, contentType)
}

// mergeString overwrites dst only when the incoming value is non-empty.
func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
