package repository

import (
	"context"
	"time"

	"mediahub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, fullName, bio *string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL, avatarKey string) (*model.User, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

type FavoriteRepository interface {
	// GetByKey looks up a favorite by its composite key. Returns
	// model.ErrFavoriteNotFound when absent.
	GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Favorite, error)
	// Insert adds a favorite. A storage-level duplicate of the composite
	// key surfaces as model.ErrFavoriteExists.
	Insert(ctx context.Context, f *model.Favorite) error
	// ListByUser returns a page of favorites plus the total count for
	// the same filter. contentType narrows the listing when non-nil.
	ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.Favorite, int64, error)
	Exists(ctx context.Context, userID int64, contentID string) (bool, error)
	// Delete removes by (user, content id); reports whether a row existed.
	Delete(ctx context.Context, userID int64, contentID string) (bool, error)
	// Clear removes all of a user's favorites, returning the count.
	Clear(ctx context.Context, userID int64) (int64, error)
}

type WatchLaterRepository interface {
	GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.WatchLater, error)
	Insert(ctx context.Context, w *model.WatchLater) error
	ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.WatchLater, int64, error)
	Exists(ctx context.Context, userID int64, contentID string) (bool, error)
	Delete(ctx context.Context, userID int64, contentID string) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type WatchHistoryRepository interface {
	// GetByContentID looks up by (user, content id), the entity's
	// composite key. Returns model.ErrWatchHistoryNotFound when absent.
	GetByContentID(ctx context.Context, userID int64, contentID string) (*model.WatchHistory, error)
	Insert(ctx context.Context, h *model.WatchHistory) error
	// Update persists the merged row by id.
	Update(ctx context.Context, h *model.WatchHistory) error
	ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.WatchHistory, int64, error)
	Delete(ctx context.Context, userID int64, contentID string) (bool, error)
	Clear(ctx context.Context, userID int64, contentType *model.ContentType) (int64, error)
}

type RatingRepository interface {
	// Upsert inserts or overwrites the stars for the composite key in a
	// single atomic statement and fills r with the stored row.
	Upsert(ctx context.Context, r *model.Rating) error
	GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Rating, error)
	// ListStars returns every star value recorded for a content item.
	ListStars(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error)
	Delete(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (bool, error)
}

type CommentRepository interface {
	Insert(ctx context.Context, c *model.Comment) error
	// GetByID returns the comment regardless of its active flag; soft
	// deleted comments stay reachable by id.
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	GetByIDWithAuthor(ctx context.Context, id int64) (*model.Comment, error)
	// ListTopLevel returns active top-level comments for a content item,
	// newest first, with author summaries joined.
	ListTopLevel(ctx context.Context, contentType model.ContentType, contentID string, offset, limit int) ([]model.Comment, int64, error)
	// ListReplies returns active replies under a parent, oldest first.
	ListReplies(ctx context.Context, parentID int64, offset, limit int) ([]model.Comment, int64, error)
	// PreviewReplies returns up to limit earliest active replies.
	PreviewReplies(ctx context.Context, parentID int64, limit int) ([]model.Comment, error)
	// UpdateContent edits the body, marking the comment edited.
	UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error)
	// Deactivate soft-deletes the comment.
	Deactivate(ctx context.Context, id int64) error
	// AdjustLikes shifts the like counter by delta, clamped at zero.
	AdjustLikes(ctx context.Context, id int64, delta int) (*model.Comment, error)
}
