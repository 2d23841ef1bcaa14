package service

import (
	"context"
	"testing"
	"time"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/cmd/blogify/repository"
	"github.com/blogify/blogify/common/auth"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockUserStore keeps users in memory
type MockUserStore struct {
	users map[uuid.UUID]*models.User
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (m *MockUserStore) Create(_ context.Context, user *models.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *MockUserStore) GetByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newUserService() (*UserService, *auth.Codec) {
	codec := auth.NewCodec("test-secret", time.Hour)
	return NewUserService(NewMockUserStore(), codec, logger.New("error", "json")), codec
}

func TestUserService_SignUp_IssuesDecodableToken(t *testing.T) {
	svc, codec := newUserService()

	user, token, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEqual(t, "hunter22", user.PasswordHash, "password must be stored hashed")

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID.String(), claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestUserService_SignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()

	_, _, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.SignUp(context.Background(), "Other Alice", "alice@example.com", "different")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_SignIn(t *testing.T) {
	svc, codec := newUserService()

	created, _, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	user, token, err := svc.SignIn(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, user.UserID)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, created.UserID.String(), claims.Subject)
}

func TestUserService_SignIn_BadCredentials(t *testing.T) {
	svc, _ := newUserService()

	_, _, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	// Wrong password and unknown email are indistinguishable to a caller
	_, _, err = svc.SignIn(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.SignIn(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, _ := newUserService()

	user, err := svc.GetByID(context.Background(), uuid.New())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
}
