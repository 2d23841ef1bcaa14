package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/cmd/blogify/repository"
	"github.com/blogify/blogify/common/cache"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPostStore keeps posts in memory
type MockPostStore struct {
	posts     map[uuid.UUID]*models.Post
	createErr error
}

func NewMockPostStore() *MockPostStore {
	return &MockPostStore{posts: make(map[uuid.UUID]*models.Post)}
}

func (m *MockPostStore) Create(_ context.Context, post *models.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.posts[post.PostID] = post
	return nil
}

func (m *MockPostStore) GetByID(_ context.Context, postID uuid.UUID) (*models.Post, error) {
	post, ok := m.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return post, nil
}

func (m *MockPostStore) List(_ context.Context) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range m.posts {
		out = append(out, p)
	}
	return out, nil
}

// MockStager records staging calls and can be told to fail
type MockStager struct {
	calls int
	url   string
	err   error
}

func (m *MockStager) Stage(_ context.Context, data []byte, mimeType, folder string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func testUser() *models.User {
	return &models.User{
		UserID:   uuid.New(),
		FullName: "Alice",
		Email:    "alice@example.com",
	}
}

func newPostService(store *MockPostStore, stager *MockStager) *PostService {
	log := logger.New("error", "json")
	return NewPostService(store, stager, cache.NewMemoryCache(log), "blogify", time.Minute, log)
}

func TestPostService_Create_WithoutImage(t *testing.T) {
	store := NewMockPostStore()
	stager := &MockStager{url: "https://res.example.com/unused"}
	svc := newPostService(store, stager)

	author := testUser()
	post, err := svc.Create(context.Background(), CreatePostInput{
		Title:  "Hello",
		Body:   "World",
		Author: author,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, author.UserID, post.AuthorID)
	assert.Nil(t, post.CoverImageURL)
	assert.Equal(t, 0, stager.calls, "no image buffer, stager must not be called")

	// Retrievable by its assigned id
	fetched, err := svc.Get(context.Background(), post.PostID)
	require.NoError(t, err)
	assert.Equal(t, post.PostID, fetched.PostID)
	assert.False(t, fetched.HasCover())
}

func TestPostService_Create_WithImage(t *testing.T) {
	store := NewMockPostStore()
	stager := &MockStager{url: "https://res.example.com/blogify/cover.png"}
	svc := newPostService(store, stager)

	post, err := svc.Create(context.Background(), CreatePostInput{
		Title:     "Hello",
		Body:      "World",
		Author:    testUser(),
		Image:     []byte("png-bytes"),
		ImageMIME: "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stager.calls)
	require.NotNil(t, post.CoverImageURL)
	assert.Equal(t, "https://res.example.com/blogify/cover.png", *post.CoverImageURL)
}

func TestPostService_Create_StagingFailure_NoPostWritten(t *testing.T) {
	store := NewMockPostStore()
	stager := &MockStager{err: fmt.Errorf("upstream quota exceeded")}
	svc := newPostService(store, stager)

	post, err := svc.Create(context.Background(), CreatePostInput{
		Title:     "Hello",
		Body:      "World",
		Author:    testUser(),
		Image:     []byte("png-bytes"),
		ImageMIME: "image/png",
	})

	assert.Nil(t, post)
	assert.ErrorIs(t, err, ErrAssetStagingFailed)
	assert.Len(t, store.posts, 0, "staging failure must not leave a post record")
}

func TestPostService_Create_Unauthenticated(t *testing.T) {
	store := NewMockPostStore()
	svc := newPostService(store, &MockStager{})

	post, err := svc.Create(context.Background(), CreatePostInput{
		Title: "Hello",
		Body:  "World",
	})

	assert.Nil(t, post)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Len(t, store.posts, 0)
}

func TestPostService_Create_PersistenceFailure(t *testing.T) {
	store := NewMockPostStore()
	store.createErr = fmt.Errorf("connection refused")
	svc := newPostService(store, &MockStager{})

	post, err := svc.Create(context.Background(), CreatePostInput{
		Title:  "Hello",
		Body:   "World",
		Author: testUser(),
	})

	assert.Nil(t, post)
	assert.ErrorIs(t, err, ErrPersistenceFailed)
}

func TestPostService_Create_MissingFields(t *testing.T) {
	svc := newPostService(NewMockPostStore(), &MockStager{})

	_, err := svc.Create(context.Background(), CreatePostInput{
		Body:   "World",
		Author: testUser(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostService_Get_NotFound(t *testing.T) {
	svc := newPostService(NewMockPostStore(), &MockStager{})

	post, err := svc.Get(context.Background(), uuid.New())
	assert.Nil(t, post)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_Get_ServesFromCache(t *testing.T) {
	store := NewMockPostStore()
	svc := newPostService(store, &MockStager{})

	post, err := svc.Create(context.Background(), CreatePostInput{
		Title:  "Cached",
		Body:   "Body",
		Author: testUser(),
	})
	require.NoError(t, err)

	// Warm the cache, then drop the backing row
	_, err = svc.Get(context.Background(), post.PostID)
	require.NoError(t, err)
	delete(store.posts, post.PostID)

	fetched, err := svc.Get(context.Background(), post.PostID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", fetched.Title)
}
