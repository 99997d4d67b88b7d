// Package service contains business logic sitting between handlers and repositories.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// Reaction actions accepted by PATCH /post-reaction/:id. Anything else is a
// validation error.
const (
	ActionLikeAdd      = "like_add"
	ActionLikeRemove   = "like_remove"
	ActionUnlikeAdd    = "unlike_add"
	ActionUnlikeRemove = "unlike_remove"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
}

type ReactInput struct {
	UserID uint
	PostID uint
	Action string
}

// ReactionResult carries everything the handler needs to respond and to emit
// the realtime events: the updated reactor sets and the post author.
type ReactionResult struct {
	PostID    uint   `json:"postId"`
	AuthorID  uint   `json:"-"`
	LikedBy   []uint `json:"likedBy"`
	UnlikedBy []uint `json:"unlikedBy"`
}

func NewReactionService(reactionRepo repository.ReactionRepository, postRepo repository.PostRepository) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
	}
}

// React applies one of the four reaction actions to the post. Each action is
// idempotent, and a like always displaces a dislike and vice versa.
func (s *ReactionService) React(ctx context.Context, in ReactInput) (*ReactionResult, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	switch in.Action {
	case ActionLikeAdd:
		err = s.reactionRepo.Set(ctx, in.UserID, in.PostID, models.ReactionLike)
	case ActionLikeRemove:
		err = s.reactionRepo.Clear(ctx, in.UserID, in.PostID, models.ReactionLike)
	case ActionUnlikeAdd:
		err = s.reactionRepo.Set(ctx, in.UserID, in.PostID, models.ReactionDislike)
	case ActionUnlikeRemove:
		err = s.reactionRepo.Clear(ctx, in.UserID, in.PostID, models.ReactionDislike)
	default:
		return nil, models.NewValidationError("Unknown reaction action")
	}
	if err != nil {
		return nil, err
	}

	likedBy, unlikedBy, err := s.reactionRepo.Members(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	return &ReactionResult{
		PostID:    in.PostID,
		AuthorID:  post.UserID,
		LikedBy:   likedBy,
		UnlikedBy: unlikedBy,
	}, nil
}
