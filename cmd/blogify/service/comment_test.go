package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCommentStore keeps comments in memory
type MockCommentStore struct {
	comments  []*models.Comment
	createErr error
}

func (m *MockCommentStore) Create(_ context.Context, comment *models.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.comments = append(m.comments, comment)
	return nil
}

func (m *MockCommentStore) ListByPost(_ context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestCommentService_Create_And_ListByPost(t *testing.T) {
	store := &MockCommentStore{}
	svc := NewCommentService(store, logger.New("error", "json"))

	author := testUser()
	postID := uuid.New()

	comment, err := svc.Create(context.Background(), postID, "nice post", author)
	require.NoError(t, err)

	assert.Equal(t, postID, comment.PostID)
	assert.Equal(t, author.UserID, comment.AuthorID)
	assert.Equal(t, "nice post", comment.Content)

	// A noise comment on another post must not leak into the listing
	_, err = svc.Create(context.Background(), uuid.New(), "other thread", author)
	require.NoError(t, err)

	comments, err := svc.ListByPost(context.Background(), postID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.CommentID, comments[0].CommentID)
}

func TestCommentService_Create_Unauthenticated(t *testing.T) {
	store := &MockCommentStore{}
	svc := NewCommentService(store, logger.New("error", "json"))

	comment, err := svc.Create(context.Background(), uuid.New(), "nice post", nil)

	assert.Nil(t, comment)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Len(t, store.comments, 0)
}

func TestCommentService_Create_EmptyContent(t *testing.T) {
	svc := NewCommentService(&MockCommentStore{}, logger.New("error", "json"))

	_, err := svc.Create(context.Background(), uuid.New(), "", testUser())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCommentService_Create_PersistenceFailure(t *testing.T) {
	store := &MockCommentStore{createErr: fmt.Errorf("connection refused")}
	svc := NewCommentService(store, logger.New("error", "json"))

	_, err := svc.Create(context.Background(), uuid.New(), "nice post", testUser())
	assert.ErrorIs(t, err, ErrPersistenceFailed)
}
