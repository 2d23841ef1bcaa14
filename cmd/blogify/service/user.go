package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/cmd/blogify/repository"
	"github.com/blogify/blogify/common/auth"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence surface the account flow needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService handles account creation and the login flow that issues
// the credential cookie
type UserService struct {
	store UserStore
	codec *auth.Codec
	log   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(store UserStore, codec *auth.Codec, log *logger.Logger) *UserService {
	return &UserService{
		store: store,
		codec: codec,
		log:   log,
	}
}

// SignUp creates an account and returns the user with a signed
// credential token for the cookie
func (s *UserService) SignUp(ctx context.Context, fullName, email, password string) (*models.User, string, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		UserID:       uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "USER",
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	token, err := s.codec.Encode(user.UserID.String(), user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("user signed up", "user_id", user.UserID, "email", email)

	return user, token, nil
}

// SignIn verifies credentials and returns the user with a fresh signed
// credential token. Unknown email and wrong password are reported
// identically.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := s.codec.Encode(user.UserID.String(), user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("user signed in", "user_id", user.UserID)

	return user, token, nil
}

// GetByID looks up a known identity by subject id. Used by the
// identity resolver middleware.
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return user, nil
}
