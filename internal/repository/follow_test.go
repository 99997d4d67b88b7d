package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowRepository_Toggle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	t.Run("FirstToggleFollows", func(t *testing.T) {
		followed, err := repo.Toggle(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)
		assert.True(t, followed)

		following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("EdgeIsDirected", func(t *testing.T) {
		following, err := repo.IsFollowing(ctx, bob.ID, alice.ID)
		assert.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("SecondToggleUnfollows", func(t *testing.T) {
		followed, err := repo.Toggle(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)
		assert.False(t, followed)

		following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("CountFollowers", func(t *testing.T) {
		_, err := repo.Toggle(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)

		count, err := repo.CountFollowers(ctx, bob.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.CountFollowers(ctx, alice.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestFollowRepository_Suggested(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	viewer := createTestUser(t, db, "viewer")
	popular := createTestUser(t, db, "popular")
	middling := createTestUser(t, db, "middling")
	nobody := createTestUser(t, db, "nobody")
	fanA := createTestUser(t, db, "fanA")
	fanB := createTestUser(t, db, "fanB")

	for _, fan := range []uint{fanA.ID, fanB.ID} {
		_, err := repo.Toggle(ctx, fan, popular.ID)
		assert.NoError(t, err)
	}
	_, err := repo.Toggle(ctx, fanA.ID, middling.ID)
	assert.NoError(t, err)

	t.Run("OrderedByFollowerCount", func(t *testing.T) {
		users, err := repo.Suggested(ctx, viewer.ID, 3)
		assert.NoError(t, err)
		assert.Len(t, users, 3)
		assert.Equal(t, popular.ID, users[0].ID)
		assert.Equal(t, 2, users[0].FollowersCount)
		assert.Equal(t, middling.ID, users[1].ID)
		// Remaining users tie at zero followers and fall back to id order.
		assert.Equal(t, nobody.ID, users[2].ID)
	})

	t.Run("ExcludesRequestingUser", func(t *testing.T) {
		users, err := repo.Suggested(ctx, viewer.ID, 10)
		assert.NoError(t, err)
		for _, u := range users {
			assert.NotEqual(t, viewer.ID, u.ID)
		}
	})

	t.Run("RespectsLimit", func(t *testing.T) {
		users, err := repo.Suggested(ctx, viewer.ID, 1)
		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, popular.ID, users[0].ID)
	})
}
