package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// popularityExpr is the additive popularity score: likes plus comments plus
// the author's follower count. Repeated verbatim in SELECT and ORDER BY so the
// query runs on both postgres and sqlite, neither of which reliably accepts a
// SELECT alias inside ORDER BY expressions.
const popularityExpr = "(" +
	"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'like') + " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) + " +
	"(SELECT COUNT(*) FROM follows WHERE follows.followee_id = posts.user_id)" +
	")"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error)
	ListFeed(ctx context.Context, userID uint) ([]*models.Post, error)
	ListPopular(ctx context.Context, limit int) ([]*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries to fetch counts in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'like') as likes_count")
}

// enrichReactions populates the LikedBy/UnlikedBy reactor id sets, in the
// order the reactions were recorded.
func (r *postRepository) enrichReactions(ctx context.Context, posts []*models.Post) error {
	for _, p := range posts {
		p.LikedBy = []uint{}
		p.UnlikedBy = []uint{}
	}
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	var reactions []models.Reaction
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id ASC").
		Find(&reactions).Error; err != nil {
		return models.NewInternalError(err)
	}

	for _, rx := range reactions {
		p, ok := byID[rx.PostID]
		if !ok {
			continue
		}
		switch rx.Kind {
		case models.ReactionLike:
			p.LikedBy = append(p.LikedBy, rx.UserID)
		case models.ReactionDislike:
			p.UnlikedBy = append(p.UnlikedBy, rx.UserID)
		}
	}
	return nil
}

func (r *postRepository) finish(ctx context.Context, posts []*models.Post, err error) ([]*models.Post, error) {
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichReactions(ctx, posts); err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	post.LikedBy = []uint{}
	post.UnlikedBy = []uint{}
	post.Comments = []models.Comment{}
	cache.InvalidatePopularPosts(ctx)
	// The author's cached profile carries a post count.
	cache.InvalidateUser(ctx, post.UserID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id ASC") }).
		Preload("Comments.User").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichReactions(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return &post, nil
}

// List returns every post in storage order (ascending id, the order posts were
// created). No time-based sort is applied.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id ASC") }).
		Preload("Comments.User").
		Order("posts.id ASC").
		Find(&posts).Error
	return r.finish(ctx, posts, err)
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id ASC") }).
		Preload("Comments.User").
		Where("user_id = ?", userID).
		Order("posts.id ASC").
		Find(&posts).Error
	return r.finish(ctx, posts, err)
}

// ListFeed returns posts authored by the user or anyone the user follows, in
// storage order.
func (r *postRepository) ListFeed(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id ASC") }).
		Preload("Comments.User").
		Where("user_id = ? OR user_id IN (?)",
			userID,
			r.db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", userID),
		).
		Order("posts.id ASC").
		Find(&posts).Error
	return r.finish(ctx, posts, err)
}

func (r *postRepository) ListPopular(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id ASC") }).
		Preload("Comments.User").
		Order(popularityExpr + " DESC, posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return r.finish(ctx, posts, err)
}
