package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mediahub/internal/model"
)

type watchHistoryRepository struct {
	db *sqlx.DB
}

// NewWatchHistoryRepository creates a new watch history repository
func NewWatchHistoryRepository(db *sqlx.DB) WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

const watchHistoryColumns = `id, user_id, content_type, content_id, content_title, content_slug, content_thumb, episode_id, episode_name, chapter_id, chapter_name, watch_time, total_duration, last_watched_at, created_at, updated_at`

// GetByContentID looks up the single progress row for (user, content).
// Content id alone identifies the item within a user's history.
func (r *watchHistoryRepository) GetByContentID(ctx context.Context, userID int64, contentID string) (*model.WatchHistory, error) {
	query := `
		SELECT ` + watchHistoryColumns + `
		FROM watch_history
		WHERE user_id = $1 AND content_id = $2
	`

	var h model.WatchHistory
	err := r.db.GetContext(ctx, &h, query, userID, contentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrWatchHistoryNotFound
		}
		return nil, fmt.Errorf("get watch history: %w", err)
	}

	return &h, nil
}

func (r *watchHistoryRepository) Insert(ctx context.Context, h *model.WatchHistory) error {
	query := `
		INSERT INTO watch_history (user_id, content_type, content_id, content_title, content_slug, content_thumb,
			episode_id, episode_name, chapter_id, chapter_name, watch_time, total_duration,
			last_watched_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW(), NOW())
		RETURNING id, last_watched_at, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		h.UserID,
		h.ContentType,
		h.ContentID,
		h.ContentTitle,
		h.ContentSlug,
		h.ContentThumb,
		h.EpisodeID,
		h.EpisodeName,
		h.ChapterID,
		h.ChapterName,
		h.WatchTime,
		h.TotalDuration,
	).Scan(&h.ID, &h.LastWatchedAt, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert watch history: %w", err)
	}

	return nil
}

// Update persists an already merged row by id and refreshes the
// last_watched_at timestamp.
func (r *watchHistoryRepository) Update(ctx context.Context, h *model.WatchHistory) error {
	query := `
		UPDATE watch_history
		SET content_title = $1, content_slug = $2, content_thumb = $3,
		    episode_id = $4, episode_name = $5, chapter_id = $6, chapter_name = $7,
		    watch_time = $8, total_duration = $9,
		    last_watched_at = NOW(), updated_at = NOW()
		WHERE id = $10
		RETURNING last_watched_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		h.ContentTitle,
		h.ContentSlug,
		h.ContentThumb,
		h.EpisodeID,
		h.EpisodeName,
		h.ChapterID,
		h.ChapterName,
		h.WatchTime,
		h.TotalDuration,
		h.ID,
	).Scan(&h.LastWatchedAt, &h.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ErrWatchHistoryNotFound
		}
		return fmt.Errorf("update watch history: %w", err)
	}

	return nil
}

func (r *watchHistoryRepository) ListByUser(ctx context.Context, userID int64, contentType *model.ContentType, offset, limit int) ([]model.WatchHistory, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if contentType != nil {
		where += ` AND content_type = $2`
		args = append(args, *contentType)
	}

	wait := countAsync(ctx, r.db, `SELECT COUNT(*) FROM watch_history `+where, args...)

	query := fmt.Sprintf(`
		SELECT %s
		FROM watch_history
		%s
		ORDER BY last_watched_at DESC
		LIMIT %d OFFSET %d
	`, watchHistoryColumns, where, limit, offset)

	items := []model.WatchHistory{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list watch history: %w", err)
	}

	total, err := wait()
	if err != nil {
		return nil, 0, fmt.Errorf("count watch history: %w", err)
	}

	return items, total, nil
}

func (r *watchHistoryRepository) Delete(ctx context.Context, userID int64, contentID string) (bool, error) {
	query := `DELETE FROM watch_history WHERE user_id = $1 AND content_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("delete watch history: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete watch history: %w", err)
	}

	return affected > 0, nil
}

// Clear removes a user's history, optionally narrowed to one content type.
func (r *watchHistoryRepository) Clear(ctx context.Context, userID int64, contentType *model.ContentType) (int64, error) {
	query := `DELETE FROM watch_history WHERE user_id = $1`
	args := []interface{}{userID}
	if contentType != nil {
		query += ` AND content_type = $2`
		args = append(args, *contentType)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear watch history: %w", err)
	}

	return res.RowsAffected()
}
