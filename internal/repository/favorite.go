package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mediahub/internal/model"
)

type favoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

const favoriteColumns = `id, user_id, content_type, content_id, content_title, content_thumb, content_slug, added_at`

func (r *favoriteRepository) GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Favorite, error) {
	query := `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE user_id = $1 AND content_type = $2 AND content_id = $3
	`

	var f model.Favorite
	err := r.db.GetContext(ctx, &f, query, userID, contentType, contentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}

	return &f, nil
}

// Insert adds a favorite. The unique constraint on
// (user_id, content_type, content_id) is the backstop against two
// concurrent inserts for the same key.
func (r *favoriteRepository) Insert(ctx context.Context, f *model.Favorite) error {
	query := `
		INSERT INTO favorites (user_id, content_type, content_id, content_title, content_thumb, content_slug, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, added_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		f.UserID,
		f.ContentType,
		f.ContentID,
		f.ContentTitle,
		f.ContentThumb,
		f.ContentSlug,
	).Scan(&f.ID, &f.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrFavoriteExists
		}
		return fmt.Errorf("insert favorite: %w", err)
	}

	return nil
}

// ListByUser returns a page of favorites newest first. The total count
// runs concurrently with the page fetch.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.Favorite, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if contentType != nil {
		where += ` AND content_type = $2`
		args = append(args, *contentType)
	}

	wait := countAsync(ctx, r.db, `SELECT COUNT(*) FROM favorites `+where, args...)

	query := fmt.Sprintf(`
		SELECT %s
		FROM favorites
		%s
		ORDER BY added_at DESC
		LIMIT %d OFFSET %d
	`, favoriteColumns, where, limit, offset)

	items := []model.Favorite{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}

	total, err := wait()
	if err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	return items, total, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID int64, contentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND content_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("check favorite existence: %w", err)
	}

	return exists, nil
}

// Delete removes a favorite by (user, content id) and reports whether a
// row was removed.
func (r *favoriteRepository) Delete(ctx context.Context, userID int64, contentID string) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND content_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}

	return affected > 0, nil
}

// Clear removes all of a user's favorites and returns the deleted count.
func (r *favoriteRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM favorites WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("clear favorites: %w", err)
	}

	return res.RowsAffected()
}
