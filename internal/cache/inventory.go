package cache

import (
	"context"
	"fmt"
	"time"
)

// Cached views and their keys. Popular posts and suggested users are the two
// expensive derived queries, both short-lived since reactions and follows
// churn constantly.
const (
	UserKeyPrefix      = "user:%d"
	PopularPostsKey    = "posts:popular"
	SuggestedKeyPrefix = "users:suggested:%d"
)

const (
	UserTTL         = 5 * time.Minute
	PopularPostsTTL = 30 * time.Second
	SuggestedTTL    = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SuggestedKey(userID uint) string {
	return fmt.Sprintf(SuggestedKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePopularPosts(ctx context.Context) {
	Invalidate(ctx, PopularPostsKey)
}

func InvalidateSuggested(ctx context.Context, userID uint) {
	Invalidate(ctx, SuggestedKey(userID))
}
