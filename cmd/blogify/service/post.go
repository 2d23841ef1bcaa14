package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/cmd/blogify/repository"
	"github.com/blogify/blogify/common/cache"
	"github.com/blogify/blogify/common/clients"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
)

// PostStore is the persistence surface the post pipeline needs
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID uuid.UUID) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
}

// PostService is the content-ingestion pipeline for posts: stage the
// cover asset (if any), then persist the record. Staging strictly
// precedes persistence; nothing is written until staging succeeds.
type PostService struct {
	store    PostStore
	stager   clients.AssetStager
	cache    cache.Cache
	folder   string
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewPostService creates a new post service. cache may be nil to
// disable the read-through post cache.
func NewPostService(store PostStore, stager clients.AssetStager, postCache cache.Cache, folder string, cacheTTL time.Duration, log *logger.Logger) *PostService {
	return &PostService{
		store:    store,
		stager:   stager,
		cache:    postCache,
		folder:   folder,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// CreatePostInput is the input for creating a post. Image is the raw
// multipart file content; it is never persisted locally.
type CreatePostInput struct {
	Title     string
	Body      string
	Author    *models.User
	Image     []byte
	ImageMIME string
}

// Create runs the ingestion pipeline for a post
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	if input.Author == nil {
		return nil, ErrUnauthenticated
	}
	if input.Title == "" || input.Body == "" {
		return nil, fmt.Errorf("%w: title and body are required", ErrInvalidInput)
	}

	log := s.log.WithUserID(input.Author.UserID.String())

	post := &models.Post{
		PostID:    uuid.New(),
		Title:     input.Title,
		Body:      input.Body,
		AuthorID:  input.Author.UserID,
		CreatedAt: time.Now().UTC(),
	}

	// 1. Stage the cover asset, if one was supplied. A staging failure
	// aborts the whole operation: no post without its declared cover.
	if len(input.Image) > 0 {
		coverURL, err := s.stager.Stage(ctx, input.Image, input.ImageMIME, s.folder)
		if err != nil {
			log.Error("cover staging failed", "error", err)
			return nil, fmt.Errorf("%w: %v", ErrAssetStagingFailed, err)
		}
		post.CoverImageURL = &coverURL
	}

	// 2. Persist the record. From here the staged asset has a durable
	// address, so the row can safely reference it.
	if err := s.store.Create(ctx, post); err != nil {
		log.Error("post insert failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	log.Info("post created",
		"post_id", post.PostID,
		"has_cover", post.HasCover(),
	)

	return post, nil
}

// Get retrieves a post by id, read-through the cache. Posts are
// insert-only, so a cached entry can never be stale.
func (s *PostService) Get(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	cacheKey := "post:" + postID.String()

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			post := &models.Post{}
			if err := json.Unmarshal([]byte(cached), post); err == nil {
				return post, nil
			}
			s.cache.Delete(ctx, cacheKey)
		}
	}

	post, err := s.store.GetByID(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(post); err == nil {
			s.cache.Set(ctx, cacheKey, string(encoded), s.cacheTTL)
		}
	}

	return post, nil
}

// List retrieves all posts, newest first
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return posts, nil
}
