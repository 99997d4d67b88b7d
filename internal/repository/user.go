package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	SetPushToken(ctx context.Context, id uint, token string) error
	Delete(ctx context.Context, id uint) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// applyUserDetails adds subqueries computing the derived counts in a single query.
func (r *userRepository) applyUserDetails(db *gorm.DB) *gorm.DB {
	return db.Select("users.*, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id) as followers_count, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) as following_count, " +
		"(SELECT COUNT(*) FROM posts WHERE posts.user_id = users.id) as post_count")
}

// enrichEdges populates the Followers/Followings id sets from the follow edges.
func (r *userRepository) enrichEdges(ctx context.Context, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var edges []models.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id IN ? OR followee_id IN ?", ids, ids).
		Order("id ASC").
		Find(&edges).Error; err != nil {
		return models.NewInternalError(err)
	}

	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		u.Followers = []uint{}
		u.Followings = []uint{}
		byID[u.ID] = u
	}
	for _, e := range edges {
		if u, ok := byID[e.FolloweeID]; ok {
			u.Followers = append(u.Followers, e.FollowerID)
		}
		if u, ok := byID[e.FollowerID]; ok {
			u.Followings = append(u.Followings, e.FolloweeID)
		}
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("an account with this email already exists")
		}
		return models.NewInternalError(err)
	}
	user.Followers = []uint{}
	user.Followings = []uint{}
	return nil
}

// GetByID serves from the per-user cache when possible. The cached copy went
// through JSON, so it never carries the password hash; callers that need the
// hash go through GetByEmail.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		if err := r.applyUserDetails(r.db.WithContext(ctx)).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return r.enrichEdges(ctx, []*models.User{&user})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.applyUserDetails(r.db.WithContext(ctx)).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", email)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichEdges(ctx, []*models.User{&user}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := r.applyUserDetails(r.db.WithContext(ctx)).
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichEdges(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) (*models.User, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, models.NewNotFoundError("User", id)
		}
		cache.InvalidateUser(ctx, id)
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hashed)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) SetPushToken(ctx context.Context, id uint, token string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("push_token", token)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// Delete removes the account and everything hanging off it in one transaction:
// the user's posts with those posts' comments and reactions, the user's own
// reactions, and every follow edge touching the user. Comments the user left
// on other users' posts are deliberately kept.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}

		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return models.NewInternalError(err)
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Reaction{}).Error; err != nil {
				return models.NewInternalError(err)
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, id)
	cache.InvalidatePopularPosts(ctx)
	cache.InvalidateSuggested(ctx, id)
	return nil
}
