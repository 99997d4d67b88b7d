package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionService_React(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	author := env.user(t, "author")
	alice := env.user(t, "alice")
	post := env.post(t, author, "react to me")

	t.Run("LikeAdd", func(t *testing.T) {
		result, err := env.react.React(ctx, ReactInput{UserID: alice.ID, PostID: post.ID, Action: ActionLikeAdd})
		require.NoError(t, err)
		assert.Equal(t, post.ID, result.PostID)
		assert.Equal(t, author.ID, result.AuthorID)
		assert.Equal(t, []uint{alice.ID}, result.LikedBy)
		assert.Empty(t, result.UnlikedBy)
	})

	t.Run("UnlikeAddDisplacesLike", func(t *testing.T) {
		result, err := env.react.React(ctx, ReactInput{UserID: alice.ID, PostID: post.ID, Action: ActionUnlikeAdd})
		require.NoError(t, err)
		assert.Empty(t, result.LikedBy)
		assert.Equal(t, []uint{alice.ID}, result.UnlikedBy)
	})

	t.Run("RemoveOppositeKindIsNoOp", func(t *testing.T) {
		result, err := env.react.React(ctx, ReactInput{UserID: alice.ID, PostID: post.ID, Action: ActionLikeRemove})
		require.NoError(t, err)
		assert.Equal(t, []uint{alice.ID}, result.UnlikedBy)
	})

	t.Run("UnlikeRemove", func(t *testing.T) {
		result, err := env.react.React(ctx, ReactInput{UserID: alice.ID, PostID: post.ID, Action: ActionUnlikeRemove})
		require.NoError(t, err)
		assert.Empty(t, result.LikedBy)
		assert.Empty(t, result.UnlikedBy)
	})

	t.Run("RepeatedRemoveStaysClean", func(t *testing.T) {
		result, err := env.react.React(ctx, ReactInput{UserID: alice.ID, PostID: post.ID, Action: ActionUnlikeRemove})
		require.NoError(t, err)
		assert.Empty(t, result.UnlikedBy)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		_, err := env.react.React(ctx, ReactInput{UserID: alice.ID, PostID: post.ID, Action: "love_add"})
		assertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("MissingPost", func(t *testing.T) {
		_, err := env.react.React(ctx, ReactInput{UserID: alice.ID, PostID: 9999, Action: ActionLikeAdd})
		assertAppError(t, err, "NOT_FOUND")
	})
}
