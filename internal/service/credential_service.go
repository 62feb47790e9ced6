package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// ErrUserNotFound is returned when a user id does not resolve to a user.
var ErrUserNotFound = errors.New("user not found")

// CredentialService registers users and verifies their passwords.
type CredentialService interface {
	Register(ctx context.Context, username, password string) (uint, error)
	Verify(ctx context.Context, username, password string) (uint, bool, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type credentialService struct {
	repo       repository.UserRepository
	cache      *cache.Client
	bcryptCost int

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentialService creates a credential service.
func NewCredentialService(repo repository.UserRepository, cache *cache.Client, bcryptCost int) CredentialService {
	return &credentialService{
		repo:       repo,
		cache:      cache,
		bcryptCost: bcryptCost,
	}
}

func (s *credentialService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a user with a hashed password and returns its id.
func (s *credentialService) Register(ctx context.Context, username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, apperrors.ErrMissingCredentials
	}
	if len(password) > auth.MaxPasswordBytes {
		return 0, apperrors.ErrPasswordTooLong
	}

	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, apperrors.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration of the same name
		if taken, lookupErr := s.usernameTaken(ctx, username); lookupErr == nil && taken {
			return 0, apperrors.ErrUsernameTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

func (s *credentialService) usernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("check username: %w", err)
}

// Verify returns the user id when username exists and password matches.
func (s *credentialService) Verify(ctx context.Context, username, password string) (uint, bool, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.burnPasswordCheck(password)
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return 0, false, nil
	}
	return user.ID, true, nil
}

// burnPasswordCheck spends one comparison at the configured cost.
func (s *credentialService) burnPasswordCheck(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.DummyHash(s.bcryptCost)
	})
	auth.BurnPasswordCheck(s.dummyHash, password)
}

// GetUser returns a user by id. The password hash is not populated on
// cache hits.
func (s *credentialService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}
