package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
)

// CommentStore is the persistence surface the comment pipeline needs
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
}

// CommentService is the ingestion pipeline without the staging step
type CommentService struct {
	store CommentStore
	log   *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(store CommentStore, log *logger.Logger) *CommentService {
	return &CommentService{
		store: store,
		log:   log,
	}
}

// Create persists a comment tied to a post and an author. The post id
// is not checked for existence: posts are never deleted, and the home
// and detail pages only ever surface comments through a real post, so
// an orphaned row is inert.
func (s *CommentService) Create(ctx context.Context, postID uuid.UUID, content string, author *models.User) (*models.Comment, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	comment := &models.Comment{
		CommentID: uuid.New(),
		PostID:    postID,
		AuthorID:  author.UserID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, comment); err != nil {
		s.log.WithUserID(author.UserID.String()).Error("comment insert failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	s.log.Info("comment created",
		"comment_id", comment.CommentID,
		"post_id", postID,
	)

	return comment, nil
}

// ListByPost retrieves all comments for a post, oldest first
func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	comments, err := s.store.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return comments, nil
}
