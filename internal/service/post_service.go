package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/events"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// PostService handles blog post operations. Requester id 0 stands for an
// anonymous client and never owns a post.
type PostService interface {
	Create(ctx context.Context, ownerID uint, author, content string) (uint, error)
	Get(ctx context.Context, id uint) (*model.BlogPost, error)
	List(ctx context.Context) ([]model.BlogPost, error)
	UpdateContent(ctx context.Context, id, requesterID uint, content *string) error
	Delete(ctx context.Context, id, requesterID uint) error
}

type postService struct {
	repo      repository.PostRepository
	cache     *cache.Client
	cacheTTL  time.Duration
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewPostService creates a new blog post service.
func NewPostService(
	repo repository.PostRepository,
	cache *cache.Client,
	cacheTTL time.Duration,
	publisher events.Publisher,
	logger *slog.Logger,
) PostService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *postService) cacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// Create stores a new post authored by ownerID.
func (s *postService) Create(ctx context.Context, ownerID uint, author, content string) (uint, error) {
	if strings.TrimSpace(content) == "" {
		return 0, apperrors.ErrEmptyContent
	}

	post := &model.BlogPost{
		Author:    author,
		Content:   content,
		CreatedAt: s.now().UTC(),
		OwnerID:   ownerID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}

	s.publish(ctx, events.PostCreated, post)
	return post.ID, nil
}

// Get retrieves a post by ID with caching.
func (s *postService) Get(ctx context.Context, id uint) (*model.BlogPost, error) {
	var cached model.BlogPost
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), post, s.cacheTTL)
	return post, nil
}

// List returns all posts in creation order.
func (s *postService) List(ctx context.Context) ([]model.BlogPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// UpdateContent replaces the content of a post owned by requesterID.
// A nil or blank content leaves the post untouched and still succeeds.
func (s *postService) UpdateContent(ctx context.Context, id, requesterID uint, content *string) error {
	var updated *model.BlogPost
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.PostRepository) error {
		post, err := s.findOwned(ctx, tx, id, requesterID)
		if err != nil {
			return err
		}
		if content == nil || strings.TrimSpace(*content) == "" {
			return nil
		}
		if err := tx.UpdateContent(ctx, id, *content); err != nil {
			return fmt.Errorf("update post %d: %w", id, err)
		}
		post.Content = *content
		updated = post
		return nil
	})
	if err != nil {
		return err
	}

	if updated != nil {
		_ = s.cache.Delete(ctx, s.cacheKey(id))
		s.publish(ctx, events.PostUpdated, updated)
	}
	return nil
}

// Delete removes a post owned by requesterID.
func (s *postService) Delete(ctx context.Context, id, requesterID uint) error {
	var deleted *model.BlogPost
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.PostRepository) error {
		post, err := s.findOwned(ctx, tx, id, requesterID)
		if err != nil {
			return err
		}
		if err := tx.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPostNotFound
			}
			return fmt.Errorf("delete post %d: %w", id, err)
		}
		deleted = post
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	s.publish(ctx, events.PostDeleted, deleted)
	return nil
}

func (s *postService) findOwned(ctx context.Context, tx repository.PostRepository, id, requesterID uint) (*model.BlogPost, error) {
	post, err := tx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	if !post.IsOwnedBy(requesterID) {
		return nil, apperrors.ErrForbidden
	}
	return post, nil
}

func (s *postService) publish(ctx context.Context, typ events.EventType, post *model.BlogPost) {
	event := events.PostEvent{
		Type:       typ,
		PostID:     post.ID,
		OwnerID:    post.OwnerID,
		Author:     post.Author,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish post event failed",
			"event", typ,
			"post_id", post.ID,
			"error", err,
		)
	}
}
