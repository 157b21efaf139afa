package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%s"
	NewsFeedKeyVal = "news:feed"
)

const (
	UserTTL     = 5 * time.Minute
	NewsFeedTTL = 2 * time.Minute
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func NewsFeedKey() string {
	return NewsFeedKeyVal
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateNewsFeed(ctx context.Context) {
	Invalidate(ctx, NewsFeedKey())
}
