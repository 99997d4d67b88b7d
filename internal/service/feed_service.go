package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// popularLimit caps /popular-posts at the ten highest-scoring posts.
const popularLimit = 10

type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	if in.Content == "" && in.ImageURL == "" {
		return nil, models.NewValidationError("Post needs text or an image")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   in.UserID,
		Content:  in.Content,
		ImageURL: in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// AllPosts returns every post in storage order.
func (s *FeedService) AllPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *FeedService) OwnPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.ListByAuthor(ctx, userID)
}

// FollowingFeed returns posts by the user and everyone they follow, in storage
// order. The feed is intentionally not time-sorted.
func (s *FeedService) FollowingFeed(ctx context.Context, userID uint) ([]*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.ListFeed(ctx, userID)
}

// PopularPosts returns the top posts ranked by likes plus comments plus the
// author's follower count, cached briefly since reactions churn constantly.
func (s *FeedService) PopularPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PopularPostsKey, &posts, cache.PopularPostsTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.ListPopular(ctx, popularLimit)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
