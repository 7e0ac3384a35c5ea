package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mediahub/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, user_id, content_type, content_id, content, parent_id, likes, is_edited, is_active, created_at, updated_at`

// commentRow scans a comment joined with its author summary.
type commentRow struct {
	ID             int64             `db:"id"`
	UserID         int64             `db:"user_id"`
	ContentType    model.ContentType `db:"content_type"`
	ContentID      string            `db:"content_id"`
	Content        string            `db:"content"`
	ParentID       *int64            `db:"parent_id"`
	Likes          int               `db:"likes"`
	IsEdited       bool              `db:"is_edited"`
	IsActive       bool              `db:"is_active"`
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at"`
	AuthorID       int64             `db:"author.id"`
	AuthorUsername string            `db:"author.username"`
	AuthorFullName *string           `db:"author.full_name"`
	AuthorAvatar   *string           `db:"author.avatar_url"`
}

func (row commentRow) toComment() model.Comment {
	return model.Comment{
		ID:          row.ID,
		UserID:      row.UserID,
		ContentType: row.ContentType,
		ContentID:   row.ContentID,
		Content:     row.Content,
		ParentID:    row.ParentID,
		Likes:       row.Likes,
		IsEdited:    row.IsEdited,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		Author: &model.UserSummary{
			ID:        row.AuthorID,
			Username:  row.AuthorUsername,
			FullName:  row.AuthorFullName,
			AvatarURL: row.AuthorAvatar,
		},
	}
}

const commentJoinColumns = `
	c.id, c.user_id, c.content_type, c.content_id, c.content, c.parent_id,
	c.likes, c.is_edited, c.is_active, c.created_at, c.updated_at,
	u.id as "author.id", u.username as "author.username",
	u.full_name as "author.full_name", u.avatar_url as "author.avatar_url"`

func (r *commentRepository) Insert(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (user_id, content_type, content_id, content, parent_id, likes, is_edited, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, FALSE, TRUE, NOW(), NOW())
		RETURNING id, likes, is_edited, is_active, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		c.UserID,
		c.ContentType,
		c.ContentID,
		c.Content,
		c.ParentID,
	).Scan(&c.ID, &c.Likes, &c.IsEdited, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// GetByID returns the comment regardless of its active flag; soft deleted
// comments stay reachable by id.
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &c, nil
}

func (r *commentRepository) GetByIDWithAuthor(ctx context.Context, id int64) (*model.Comment, error) {
	query := `
		SELECT ` + commentJoinColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	var row commentRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment with author: %w", err)
	}

	c := row.toComment()
	return &c, nil
}

// ListTopLevel returns active top-level comments for a content item,
// newest first, with author summaries joined. The total counts top-level
// active comments only.
func (r *commentRepository) ListTopLevel(ctx context.Context, contentType model.ContentType, contentID string, offset, limit int) ([]model.Comment, int64, error) {
	wait := countAsync(ctx, r.db,
		`SELECT COUNT(*) FROM comments WHERE content_type = $1 AND content_id = $2 AND parent_id IS NULL AND is_active = TRUE`,
		contentType, contentID)

	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.content_type = $1 AND c.content_id = $2 AND c.parent_id IS NULL AND c.is_active = TRUE
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT %d OFFSET %d
	`, commentJoinColumns, limit, offset)

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, contentType, contentID); err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.toComment()
	}

	total, err := wait()
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	return comments, total, nil
}

// ListReplies returns active replies under a parent, oldest first.
func (r *commentRepository) ListReplies(ctx context.Context, parentID int64, offset, limit int) ([]model.Comment, int64, error) {
	wait := countAsync(ctx, r.db,
		`SELECT COUNT(*) FROM comments WHERE parent_id = $1 AND is_active = TRUE`,
		parentID)

	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.parent_id = $1 AND c.is_active = TRUE
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT %d OFFSET %d
	`, commentJoinColumns, limit, offset)

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, parentID); err != nil {
		return nil, 0, fmt.Errorf("list replies: %w", err)
	}

	replies := make([]model.Comment, len(rows))
	for i, row := range rows {
		replies[i] = row.toComment()
	}

	total, err := wait()
	if err != nil {
		return nil, 0, fmt.Errorf("count replies: %w", err)
	}

	return replies, total, nil
}

// PreviewReplies returns up to limit earliest active replies for a
// parent, for attaching under listings.
func (r *commentRepository) PreviewReplies(ctx context.Context, parentID int64, limit int) ([]model.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.parent_id = $1 AND c.is_active = TRUE
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT %d
	`, commentJoinColumns, limit)

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, parentID); err != nil {
		return nil, fmt.Errorf("preview replies: %w", err)
	}

	replies := make([]model.Comment, len(rows))
	for i, row := range rows {
		replies[i] = row.toComment()
	}

	return replies, nil
}

// UpdateContent edits the body and marks the comment edited.
func (r *commentRepository) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET content = $1, is_edited = TRUE, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + commentColumns

	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, content, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	return &c, nil
}

// Deactivate soft-deletes the comment. The row stays in storage.
func (r *commentRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE comments
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate comment: %w", err)
	}
	if affected == 0 {
		return model.ErrCommentNotFound
	}

	return nil
}

// AdjustLikes shifts the like counter atomically, clamped at zero.
func (r *commentRepository) AdjustLikes(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET likes = GREATEST(likes + $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING ` + commentColumns

	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, delta, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("adjust comment likes: %w", err)
	}

	return &c, nil
}
