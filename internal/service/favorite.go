package service

import (
	"context"

	"mediahub/internal/model"
	"mediahub/internal/repository"
)

// FavoriteService manages a user's favorites list.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo}
}

// Add puts a content item into the user's favorites. Adding an item
// that is already present is a conflict, not a merge; the stored row
// keeps its original snapshot fields.
func (s *FavoriteService) Add(ctx context.Context, userID int64, req *model.CreateFavoriteRequest) (*model.Favorite, error) {
	_, err := s.favoriteRepo.GetByKey(ctx, userID, req.ContentType, req.ContentID)
	if err == nil {
		return nil, model.ErrFavoriteExists
	}
	if err != model.ErrFavoriteNotFound {
		return nil, err
	}

	favorite := &model.Favorite{
		UserID:       userID,
		ContentType:  req.ContentType,
		ContentID:    req.ContentID,
		ContentTitle: req.ContentTitle,
		ContentThumb: req.ContentThumb,
		ContentSlug:  req.ContentSlug,
	}

	if err := s.favoriteRepo.Insert(ctx, favorite); err != nil {
		return nil, err
	}

	return favorite, nil
}

// List returns a page of the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID int64, contentType *model.ContentType, page, limit int) (*model.Page[model.Favorite], error) {
	offset := (page - 1) * limit
	items, total, err := s.favoriteRepo.ListByUser(ctx, userID, contentType, offset, limit)
	if err != nil {
		return nil, err
	}

	return model.NewPage(items, total, page, limit), nil
}

// Check reports whether a content item is in the user's favorites.
func (s *FavoriteService) Check(ctx context.Context, userID int64, contentID string) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, contentID)
}

// Remove deletes a favorite by content id.
func (s *FavoriteService) Remove(ctx context.Context, userID int64, contentID string) error {
	deleted, err := s.favoriteRepo.Delete(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrFavoriteNotFound
	}
	return nil
}

// Clear removes all of the user's favorites and returns the count.
func (s *FavoriteService) Clear(ctx context.Context, userID int64) (int64, error) {
	return s.favoriteRepo.Clear(ctx, userID)
}
