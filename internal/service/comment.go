package service

import (
	"context"
	"log"

	"mediahub/internal/model"
	"mediahub/internal/repository"
)

// CommentService manages the two-level comment tree on content items.
type CommentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// Create posts a comment or a reply. A reply's parent must exist, be a
// top-level comment, and belong to the same content item; replies to
// replies are rejected so the tree stays two levels deep.
func (s *CommentService) Create(ctx context.Context, userID int64, req *model.CreateCommentRequest) (*model.Comment, error) {
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsActive ||
			parent.ParentID != nil ||
			parent.ContentType != req.ContentType ||
			parent.ContentID != req.ContentID {
			return nil, model.ErrInvalidParent
		}
	}

	comment := &model.Comment{
		UserID:      userID,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Content:     req.Content,
		ParentID:    req.ParentID,
	}

	if err := s.commentRepo.Insert(ctx, comment); err != nil {
		return nil, err
	}

	return s.withAuthor(ctx, comment)
}

// List returns a page of active top-level comments for a content item,
// newest first, each carrying up to RepliesPreview earliest replies.
func (s *CommentService) List(ctx context.Context, contentType model.ContentType, contentID string, page, limit int) (*model.Page[model.Comment], error) {
	offset := (page - 1) * limit
	comments, total, err := s.commentRepo.ListTopLevel(ctx, contentType, contentID, offset, limit)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		replies, err := s.commentRepo.PreviewReplies(ctx, comments[i].ID, model.RepliesPreview)
		if err != nil {
			return nil, err
		}
		comments[i].Replies = replies
	}

	return model.NewPage(comments, total, page, limit), nil
}

// ListReplies returns a page of active replies under a parent, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, parentID int64, page, limit int) (*model.Page[model.Comment], error) {
	offset := (page - 1) * limit
	replies, total, err := s.commentRepo.ListReplies(ctx, parentID, offset, limit)
	if err != nil {
		return nil, err
	}

	return model.NewPage(replies, total, page, limit), nil
}

// Update edits the caller's own comment. The ownership check runs after
// existence, so a missing comment is NotFound and someone else's is
// Forbidden.
func (s *CommentService) Update(ctx context.Context, userID, commentID int64, req *model.UpdateCommentRequest) (*model.Comment, error) {
	existing, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, model.ErrNotCommentOwner
	}

	updated, err := s.commentRepo.UpdateContent(ctx, commentID, req.Content)
	if err != nil {
		return nil, err
	}

	return s.withAuthor(ctx, updated)
}

// Delete soft-deletes the caller's own comment. The row stays in
// storage; listings skip it, direct lookups still find it.
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	existing, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return model.ErrNotCommentOwner
	}

	return s.commentRepo.Deactivate(ctx, commentID)
}

// Like shifts the like counter. No per-user tracking: the same caller
// may like repeatedly, and unlike stops at zero.
func (s *CommentService) Like(ctx context.Context, commentID int64, like bool) (*model.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	delta := 1
	if !like {
		delta = -1
	}

	return s.commentRepo.AdjustLikes(ctx, commentID, delta)
}

// withAuthor reloads the comment with its author summary joined. The
// bare comment is still returned if the join fails.
func (s *CommentService) withAuthor(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	full, err := s.commentRepo.GetByIDWithAuthor(ctx, c.ID)
	if err != nil {
		log.Printf("[CommentService] load author failed: comment=%d err=%v", c.ID, err)
		return c, nil
	}
	return full, nil
}
