package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mediahub/internal/model"
)

type ratingRepository struct {
	db *sqlx.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepository{db: db}
}

const ratingColumns = `id, user_id, content_type, content_id, stars, created_at, updated_at`

// Upsert writes the rating in one statement. ON CONFLICT makes the
// insert-or-overwrite atomic under concurrent submissions for the same
// key; created_at is preserved on overwrite.
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	query := `
		INSERT INTO ratings (user_id, content_type, content_id, stars, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, content_type, content_id)
		DO UPDATE SET stars = EXCLUDED.stars, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		rating.UserID,
		rating.ContentType,
		rating.ContentID,
		rating.Stars,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	return nil
}

func (r *ratingRepository) GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.Rating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM ratings
		WHERE user_id = $1 AND content_type = $2 AND content_id = $3
	`

	var rating model.Rating
	err := r.db.GetContext(ctx, &rating, query, userID, contentType, contentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrRatingNotFound
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rating, nil
}

// ListStars returns every stars value recorded for a content item. The
// aggregate is computed in Go so the mean and distribution come from a
// single consistent read.
func (r *ratingRepository) ListStars(ctx context.Context, contentType model.ContentType, contentID string) ([]int, error) {
	query := `SELECT stars FROM ratings WHERE content_type = $1 AND content_id = $2`

	stars := []int{}
	if err := r.db.SelectContext(ctx, &stars, query, contentType, contentID); err != nil {
		return nil, fmt.Errorf("list rating stars: %w", err)
	}

	return stars, nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (bool, error) {
	query := `DELETE FROM ratings WHERE user_id = $1 AND content_type = $2 AND content_id = $3`

	res, err := r.db.ExecContext(ctx, query, userID, contentType, contentID)
	if err != nil {
		return false, fmt.Errorf("delete rating: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete rating: %w", err)
	}

	return affected > 0, nil
}
