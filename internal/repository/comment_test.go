package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, author, "hello")

	comment := &models.Comment{PostID: post.ID, UserID: commenter.ID, Content: "Nice post!"}
	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NotZero(t, comment.ID)
	// The stored comment comes back with its author attached, ready for the
	// commentUpdate event payload.
	assert.Equal(t, commenter.ID, comment.User.ID)
	assert.Equal(t, "commenter", comment.User.Name)
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")
	post := createTestPost(t, db, author, "hello")
	other := createTestPost(t, db, author, "unrelated")

	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, UserID: first.ID, Content: "one"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, UserID: second.ID, Content: "two"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: other.ID, UserID: first.ID, Content: "elsewhere"}))

	comments, err := repo.ListByPost(ctx, post.ID)
	assert.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "one", comments[0].Content)
	assert.Equal(t, "two", comments[1].Content)
	assert.Equal(t, "first", comments[0].User.Name)
}
