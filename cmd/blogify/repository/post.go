package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/common/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *db.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *db.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (
			post_id, title, body, author_id, cover_image_url, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.db.Exec(ctx, query,
		post.PostID,
		post.Title,
		post.Body,
		post.AuthorID,
		post.CoverImageURL,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by id with its author name joined in
func (r *PostRepository) GetByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	query := `
		SELECT p.post_id, p.title, p.body, p.author_id, p.cover_image_url, p.created_at,
		       u.full_name
		FROM posts p
		JOIN users u ON u.user_id = p.author_id
		WHERE p.post_id = $1
	`

	post := &models.Post{}
	err := r.db.QueryRow(ctx, query, postID).Scan(
		&post.PostID,
		&post.Title,
		&post.Body,
		&post.AuthorID,
		&post.CoverImageURL,
		&post.CreatedAt,
		&post.AuthorName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// List retrieves all posts, newest first
func (r *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT p.post_id, p.title, p.body, p.author_id, p.cover_image_url, p.created_at,
		       u.full_name
		FROM posts p
		JOIN users u ON u.user_id = p.author_id
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post := &models.Post{}
		err := rows.Scan(
			&post.PostID,
			&post.Title,
			&post.Body,
			&post.AuthorID,
			&post.CoverImageURL,
			&post.CreatedAt,
			&post.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}
