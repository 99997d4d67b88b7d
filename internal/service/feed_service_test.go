package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_CreatePost(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	author := env.user(t, "author")

	t.Run("TextOnly", func(t *testing.T) {
		post, err := env.feed.CreatePost(ctx, CreatePostInput{UserID: author.ID, Content: "hello world"})
		require.NoError(t, err)
		assert.NotZero(t, post.ID)
		assert.Equal(t, "hello world", post.Content)
		assert.Equal(t, author.ID, post.User.ID)
		assert.NotNil(t, post.LikedBy)
		assert.NotNil(t, post.Comments)
	})

	t.Run("ImageOnly", func(t *testing.T) {
		post, err := env.feed.CreatePost(ctx, CreatePostInput{UserID: author.ID, ImageURL: "https://example.com/a.png"})
		require.NoError(t, err)
		assert.Empty(t, post.Content)
		assert.Equal(t, "https://example.com/a.png", post.ImageURL)
	})

	t.Run("NeitherTextNorImage", func(t *testing.T) {
		_, err := env.feed.CreatePost(ctx, CreatePostInput{UserID: author.ID})
		assertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("MissingAuthor", func(t *testing.T) {
		_, err := env.feed.CreatePost(ctx, CreatePostInput{UserID: 9999, Content: "ghost"})
		assertAppError(t, err, "NOT_FOUND")
	})

	t.Run("ZeroUserID", func(t *testing.T) {
		_, err := env.feed.CreatePost(ctx, CreatePostInput{Content: "anonymous"})
		assertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestFeedService_Feeds(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	author := env.user(t, "author")
	other := env.user(t, "other")
	env.post(t, author, "one")
	env.post(t, other, "two")

	t.Run("AllPosts", func(t *testing.T) {
		posts, err := env.feed.AllPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("OwnPosts", func(t *testing.T) {
		posts, err := env.feed.OwnPosts(ctx, author.ID)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "one", posts[0].Content)
	})

	t.Run("OwnPostsUnknownUser", func(t *testing.T) {
		_, err := env.feed.OwnPosts(ctx, 9999)
		assertAppError(t, err, "NOT_FOUND")
	})

	t.Run("FollowingFeedWithoutFollows", func(t *testing.T) {
		posts, err := env.feed.FollowingFeed(ctx, author.ID)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, author.ID, posts[0].UserID)
	})

	t.Run("FollowingFeedUnknownUser", func(t *testing.T) {
		_, err := env.feed.FollowingFeed(ctx, 9999)
		assertAppError(t, err, "NOT_FOUND")
	})

	t.Run("PopularPostsWithoutRedis", func(t *testing.T) {
		posts, err := env.feed.PopularPosts(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}
