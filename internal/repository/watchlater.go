package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mediahub/internal/model"
)

type watchLaterRepository struct {
	db *sqlx.DB
}

// NewWatchLaterRepository creates a new watch later repository
func NewWatchLaterRepository(db *sqlx.DB) WatchLaterRepository {
	return &watchLaterRepository{db: db}
}

const watchLaterColumns = `id, user_id, content_type, content_id, content_title, content_thumb, content_slug, added_at`

func (r *watchLaterRepository) GetByKey(ctx context.Context, userID int64, contentType model.ContentType, contentID string) (*model.WatchLater, error) {
	query := `
		SELECT ` + watchLaterColumns + `
		FROM watch_later
		WHERE user_id = $1 AND content_type = $2 AND content_id = $3
	`

	var w model.WatchLater
	err := r.db.GetContext(ctx, &w, query, userID, contentType, contentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrWatchLaterNotFound
		}
		return nil, fmt.Errorf("get watch later: %w", err)
	}

	return &w, nil
}

func (r *watchLaterRepository) Insert(ctx context.Context, w *model.WatchLater) error {
	query := `
		INSERT INTO watch_later (user_id, content_type, content_id, content_title, content_thumb, content_slug, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, added_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		w.UserID,
		w.ContentType,
		w.ContentID,
		w.ContentTitle,
		w.ContentThumb,
		w.ContentSlug,
	).Scan(&w.ID, &w.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrWatchLaterExists
		}
		return fmt.Errorf("insert watch later: %w", err)
	}

	return nil
}

func (r *watchLaterRepository) ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.WatchLater, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if contentType != nil {
		where += ` AND content_type = $2`
		args = append(args, *contentType)
	}

	wait := countAsync(ctx, r.db, `SELECT COUNT(*) FROM watch_later `+where, args...)

	query := fmt.Sprintf(`
		SELECT %s
		FROM watch_later
		%s
		ORDER BY added_at DESC
		LIMIT %d OFFSET %d
	`, watchLaterColumns, where, limit, offset)

	items := []model.WatchLater{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list watch later: %w", err)
	}

	total, err := wait()
	if err != nil {
		return nil, 0, fmt.Errorf("count watch later: %w", err)
	}

	return items, total, nil
}

func (r *watchLaterRepository) Exists(ctx context.Context, userID int64, contentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM watch_later WHERE user_id = $1 AND content_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("check watch later existence: %w", err)
	}

	return exists, nil
}

func (r *watchLaterRepository) Delete(ctx context.Context, userID int64, contentID string) (bool, error) {
	query := `DELETE FROM watch_later WHERE user_id = $1 AND content_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("delete watch later: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete watch later: %w", err)
	}

	return affected > 0, nil
}

func (r *watchLaterRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM watch_later WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("clear watch later: %w", err)
	}

	return res.RowsAffected()
}
