package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediahub/internal/model"
)

type mockCommentRepository struct {
	comments map[int64]*model.Comment
	nextID   int64

	listTopLevelFn func(ctx context.Context, contentType model.ContentType, contentID string, offset, limit int) ([]model.Comment, int64, error)
	listRepliesFn  func(ctx context.Context, parentID int64, offset, limit int) ([]model.Comment, int64, error)
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{comments: map[int64]*model.Comment{}, nextID: 1}
}

func (m *mockCommentRepository) seed(c model.Comment) *model.Comment {
	if c.ID == 0 {
		c.ID = m.nextID
	}
	if c.ID >= m.nextID {
		m.nextID = c.ID + 1
	}
	m.comments[c.ID] = &c
	return &c
}

func (m *mockCommentRepository) Insert(ctx context.Context, c *model.Comment) error {
	c.ID = m.nextID
	m.nextID++
	c.IsActive = true
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	copied := *c
	m.comments[c.ID] = &copied
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if c, ok := m.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) GetByIDWithAuthor(ctx context.Context, id int64) (*model.Comment, error) {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Author = &model.UserSummary{ID: c.UserID, Username: "someone"}
	return c, nil
}

func (m *mockCommentRepository) ListTopLevel(ctx context.Context, contentType model.ContentType, contentID string, offset, limit int) ([]model.Comment, int64, error) {
	if m.listTopLevelFn != nil {
		return m.listTopLevelFn(ctx, contentType, contentID, offset, limit)
	}
	var out []model.Comment
	for _, c := range m.comments {
		if c.IsActive && c.ParentID == nil && c.ContentType == contentType && c.ContentID == contentID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockCommentRepository) ListReplies(ctx context.Context, parentID int64, offset, limit int) ([]model.Comment, int64, error) {
	if m.listRepliesFn != nil {
		return m.listRepliesFn(ctx, parentID, offset, limit)
	}
	var out []model.Comment
	for _, c := range m.comments {
		if c.IsActive && c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockCommentRepository) PreviewReplies(ctx context.Context, parentID int64, limit int) ([]model.Comment, error) {
	replies, _, err := m.ListReplies(ctx, parentID, 0, limit)
	if err != nil {
		return nil, err
	}
	if len(replies) > limit {
		replies = replies[:limit]
	}
	return replies, nil
}

func (m *mockCommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	c.Content = content
	c.IsEdited = true
	c.UpdatedAt = time.Now()
	copied := *c
	return &copied, nil
}

func (m *mockCommentRepository) Deactivate(ctx context.Context, id int64) error {
	c, ok := m.comments[id]
	if !ok || !c.IsActive {
		return model.ErrCommentNotFound
	}
	c.IsActive = false
	return nil
}

func (m *mockCommentRepository) AdjustLikes(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	c.Likes += delta
	if c.Likes < 0 {
		c.Likes = 0
	}
	copied := *c
	return &copied, nil
}

func TestCommentService_Create_ReplyToReplyRejected(t *testing.T) {
	mockRepo := newMockCommentRepository()
	top := mockRepo.seed(model.Comment{UserID: 1, ContentType: model.ContentTypeMovie, ContentID: "movie-1", Content: "top", IsActive: true})
	reply := mockRepo.seed(model.Comment{UserID: 2, ContentType: model.ContentTypeMovie, ContentID: "movie-1", Content: "reply", ParentID: &top.ID, IsActive: true})
	svc := NewCommentService(mockRepo)

	_, err := svc.Create(context.Background(), 3, &model.CreateCommentRequest{
		ContentType: model.ContentTypeMovie,
		ContentID:   "movie-1",
		Content:     "nested",
		ParentID:    &reply.ID,
	})

	if !errors.Is(err, model.ErrInvalidParent) {
		t.Errorf("error = %v, want ErrInvalidParent", err)
	}
}

func TestCommentService_Create_ParentOnOtherContentRejected(t *testing.T) {
	mockRepo := newMockCommentRepository()
	parent := mockRepo.seed(model.Comment{UserID: 1, ContentType: model.ContentTypeMovie, ContentID: "movie-1", Content: "top", IsActive: true})
	svc := NewCommentService(mockRepo)

	_, err := svc.Create(context.Background(), 2, &model.CreateCommentRequest{
		ContentType: model.ContentTypeMovie,
		ContentID:   "movie-2",
		Content:     "reply",
		ParentID:    &parent.ID,
	})

	if !errors.Is(err, model.ErrInvalidParent) {
		t.Errorf("error = %v, want ErrInvalidParent", err)
	}
}

func TestCommentService_Create_MissingParentNotFound(t *testing.T) {
	svc := NewCommentService(newMockCommentRepository())
	missing := int64(99)

	_, err := svc.Create(context.Background(), 1, &model.CreateCommentRequest{
		ContentType: model.ContentTypeMovie,
		ContentID:   "movie-1",
		Content:     "reply",
		ParentID:    &missing,
	})

	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("error = %v, want ErrCommentNotFound", err)
	}
}

func TestCommentService_Delete_NonOwnerForbidden(t *testing.T) {
	mockRepo := newMockCommentRepository()
	c := mockRepo.seed(model.Comment{UserID: 1, ContentType: model.ContentTypeMovie, ContentID: "movie-1", Content: "hello", IsActive: true})
	svc := NewCommentService(mockRepo)

	err := svc.Delete(context.Background(), 2, c.ID)

	if !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("error = %v, want ErrNotCommentOwner", err)
	}
	if !mockRepo.comments[c.ID].IsActive {
		t.Error("comment must stay active after a forbidden delete")
	}
}

func TestCommentService_Delete_SoftDelete(t *testing.T) {
	mockRepo := newMockCommentRepository()
	c := mockRepo.seed(model.Comment{UserID: 1, ContentType: model.ContentTypeMovie, ContentID: "movie-1", Content: "hello", IsActive: true})
	svc := NewCommentService(mockRepo)

	if err := svc.Delete(context.Background(), 1, c.ID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// The row survives and stays reachable by id, listings skip it.
	got, err := mockRepo.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("deleted comment must stay reachable by id: %v", err)
	}
	if got.IsActive {
		t.Error("comment must be inactive after delete")
	}

	page, err := svc.List(context.Background(), model.ContentTypeMovie, "movie-1", 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("listing returned %d items, deleted comment must be excluded", len(page.Items))
	}
}

func TestCommentService_Update_MissingThenForbidden(t *testing.T) {
	mockRepo := newMockCommentRepository()
	c := mockRepo.seed(model.Comment{UserID: 1, ContentType: model.ContentTypeMovie, ContentID: "movie-1", Content: "hello", IsActive: true})
	svc := NewCommentService(mockRepo)

	// Existence is checked before ownership.
	if _, err := svc.Update(context.Background(), 2, 999, &model.UpdateCommentRequest{Content: "x"}); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("error = %v, want ErrCommentNotFound", err)
	}
	if _, err := svc.Update(context.Background(), 2, c.ID, &model.UpdateCommentRequest{Content: "x"}); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("error = %v, want ErrNotCommentOwner", err)
	}

	updated, err := svc.Update(context.Background(), 1, c.ID, &model.UpdateCommentRequest{Content: "edited"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Content != "edited" || !updated.IsEdited {
		t.Errorf("updated = %+v, want edited content with is_edited", updated)
	}
}

func TestCommentService_Like_CounterClampsAtZero(t *testing.T) {
	mockRepo := newMockCommentRepository()
	c := mockRepo.seed(model.Comment{UserID: 1, ContentType: model.ContentTypeMovie, ContentID: "movie-1", Content: "hello", IsActive: true})
	svc := NewCommentService(mockRepo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Like(context.Background(), c.ID, true); err != nil {
			t.Fatalf("like %d: %v", i, err)
		}
	}
	after, err := svc.Like(context.Background(), c.ID, false)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if after.Likes != 2 {
		t.Errorf("likes = %d, want 2", after.Likes)
	}

	// Unlike below zero clamps.
	for i := 0; i < 5; i++ {
		after, err = svc.Like(context.Background(), c.ID, false)
		if err != nil {
			t.Fatalf("unlike %d: %v", i, err)
		}
	}
	if after.Likes != 0 {
		t.Errorf("likes = %d, want clamp at 0", after.Likes)
	}
}

func TestCommentService_Like_MissingComment(t *testing.T) {
	svc := NewCommentService(newMockCommentRepository())

	_, err := svc.Like(context.Background(), 404, true)

	if !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("error = %v, want ErrCommentNotFound", err)
	}
}
