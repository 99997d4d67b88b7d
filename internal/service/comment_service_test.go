package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	author := env.user(t, "author")
	commenter := env.user(t, "commenter")
	post := env.post(t, author, "talk to me")

	t.Run("Success", func(t *testing.T) {
		result, err := env.comments.CreateComment(ctx, CreateCommentInput{
			UserID: commenter.ID, PostID: post.ID, Content: "first!",
		})
		require.NoError(t, err)
		assert.Equal(t, author.ID, result.PostAuthorID)
		assert.Equal(t, "first!", result.Comment.Content)
		assert.Equal(t, commenter.ID, result.Comment.User.ID)
	})

	t.Run("MissingPost", func(t *testing.T) {
		_, err := env.comments.CreateComment(ctx, CreateCommentInput{
			UserID: commenter.ID, PostID: 9999, Content: "hello?",
		})
		assertAppError(t, err, "NOT_FOUND")
	})

	t.Run("EmptyContent", func(t *testing.T) {
		_, err := env.comments.CreateComment(ctx, CreateCommentInput{
			UserID: commenter.ID, PostID: post.ID, Content: "",
		})
		assertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("ContentTooLong", func(t *testing.T) {
		_, err := env.comments.CreateComment(ctx, CreateCommentInput{
			UserID: commenter.ID, PostID: post.ID, Content: strings.Repeat("x", 10001),
		})
		assertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestCommentService_ListComments(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	author := env.user(t, "author")
	post := env.post(t, author, "quiet post")

	t.Run("EmptyPost", func(t *testing.T) {
		comments, err := env.comments.ListComments(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("MissingPost", func(t *testing.T) {
		_, err := env.comments.ListComments(ctx, 9999)
		assertAppError(t, err, "NOT_FOUND")
	})
}
