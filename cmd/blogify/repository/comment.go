package repository

import (
	"context"
	"fmt"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/common/db"
	"github.com/google/uuid"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *db.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *db.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment. The post id is written as given:
// referential integrity is the ingestion pipeline's call, not ours.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (
			comment_id, post_id, author_id, content, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := r.db.Exec(ctx, query,
		comment.CommentID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByPost retrieves all comments for a post, oldest first, with
// author names joined in
func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	query := `
		SELECT c.comment_id, c.post_id, c.author_id, c.content, c.created_at,
		       u.full_name
		FROM comments c
		JOIN users u ON u.user_id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.CommentID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}
