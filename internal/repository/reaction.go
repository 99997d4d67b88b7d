package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for like/dislike data operations.
type ReactionRepository interface {
	// Set records userID's reaction of the given kind on the post, replacing
	// any opposite reaction. Idempotent.
	Set(ctx context.Context, userID, postID uint, kind string) error
	// Clear removes userID's reaction of the given kind from the post. A no-op
	// if no such reaction exists, including when the user holds the opposite
	// kind.
	Clear(ctx context.Context, userID, postID uint, kind string) error
	// Members returns the post's likedBy and unlikedBy reactor id sets in the
	// order the reactions were recorded.
	Members(ctx context.Context, postID uint) (likedBy, unlikedBy []uint, err error)
}

// reactionRepository implements ReactionRepository
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Set(ctx context.Context, userID, postID uint, kind string) error {
	// Upsert on the (user_id, post_id) unique index. A like overwrites a
	// dislike and vice versa, which is exactly the mutual exclusion the two
	// sets require even under concurrent requests.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"kind": kind}),
	}).Create(&models.Reaction{UserID: userID, PostID: postID, Kind: kind}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePopularPosts(ctx)
	return nil
}

func (r *reactionRepository) Clear(ctx context.Context, userID, postID uint, kind string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, kind).
		Delete(&models.Reaction{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePopularPosts(ctx)
	return nil
}

func (r *reactionRepository) Members(ctx context.Context, postID uint) ([]uint, []uint, error) {
	var reactions []models.Reaction
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&reactions).Error; err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	likedBy := []uint{}
	unlikedBy := []uint{}
	for _, rx := range reactions {
		switch rx.Kind {
		case models.ReactionLike:
			likedBy = append(likedBy, rx.UserID)
		case models.ReactionDislike:
			unlikedBy = append(unlikedBy, rx.UserID)
		}
	}
	return likedBy, unlikedBy, nil
}
