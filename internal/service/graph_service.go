package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// suggestedLimit caps /suggested-users at ten accounts.
const suggestedLimit = 10

type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

type ToggleFollowInput struct {
	UserID   uint
	TargetID uint
}

func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ToggleFollow flips the follow edge from UserID to TargetID and reports
// whether the user follows the target afterwards. Toggling twice restores the
// original graph.
func (s *GraphService) ToggleFollow(ctx context.Context, in ToggleFollowInput) (bool, error) {
	if in.UserID == in.TargetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return false, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.TargetID); err != nil {
		return false, err
	}

	return s.followRepo.Toggle(ctx, in.UserID, in.TargetID)
}

// SuggestedUsers returns up to ten accounts ordered by follower count,
// excluding the requesting user. Results are cached per user for a minute.
func (s *GraphService) SuggestedUsers(ctx context.Context, userID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var users []*models.User
	err := cache.Aside(ctx, cache.SuggestedKey(userID), &users, cache.SuggestedTTL, func() error {
		var fetchErr error
		users, fetchErr = s.followRepo.Suggested(ctx, userID, suggestedLimit)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
