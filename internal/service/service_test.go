package service

import (
	"errors"
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the services against an in-memory database so the business
// rules run through the real repository layer.
type testEnv struct {
	db       *gorm.DB
	users    *UserService
	feed     *FeedService
	react    *ReactionService
	comments *CommentService
	graph    *GraphService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	followRepo := repository.NewFollowRepository(db)

	return &testEnv{
		db:       db,
		users:    NewUserService(userRepo),
		feed:     NewFeedService(postRepo, userRepo),
		react:    NewReactionService(reactionRepo, postRepo),
		comments: NewCommentService(commentRepo, postRepo),
		graph:    NewGraphService(followRepo, userRepo),
	}
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", Password: "hashed"}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

func (e *testEnv) post(t *testing.T, author *models.User, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: author.ID, Content: content}
	if err := e.db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}
