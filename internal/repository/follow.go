package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-graph data operations.
type FollowRepository interface {
	// Toggle flips the follower->followee edge inside one transaction and
	// reports whether the edge exists afterwards. Applying it twice returns
	// the graph to its original state.
	Toggle(ctx context.Context, followerID, followeeID uint) (followed bool, err error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	// Suggested returns up to limit users ordered by follower count descending,
	// excluding the requesting user.
	Suggested(ctx context.Context, userID uint, limit int) ([]*models.User, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var followed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected > 0 {
			followed = false
			return nil
		}
		if err := tx.Create(&models.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error; err != nil {
			// A concurrent toggle inserted the edge first; the edge exists,
			// which is the state this call was converging to.
			if isUniqueViolation(err) {
				followed = true
				return nil
			}
			return models.NewInternalError(err)
		}
		followed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	cache.InvalidateSuggested(ctx, followerID)
	cache.InvalidateSuggested(ctx, followeeID)
	cache.InvalidatePopularPosts(ctx)
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return followed, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) Suggested(ctx context.Context, userID uint, limit int) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).
		Select("users.*, "+
			"(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id) as followers_count, "+
			"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) as following_count, "+
			"(SELECT COUNT(*) FROM posts WHERE posts.user_id = users.id) as post_count").
		Where("users.id != ?", userID).
		Order("(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id) DESC, users.id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, u := range users {
		u.Followers = []uint{}
		u.Followings = []uint{}
	}
	return users, nil
}
