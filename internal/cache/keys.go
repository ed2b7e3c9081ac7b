package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	PostsListKey       = "posts:list"
	AnalyticsKeyPrefix = "analytics:likes:%s:%s"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 30 * time.Minute
	PostsListTTL = 1 * time.Minute
	AnalyticsTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// AnalyticsKey caches a likes-per-day aggregation for a date range.
func AnalyticsKey(from, to string) string {
	return fmt.Sprintf(AnalyticsKeyPrefix, from, to)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost drops both the single-post entry and the list, since likes
// counts shown in the list change with the post.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, PostsListKey)
}

// InvalidateAnalytics drops every cached aggregation window. Like writes are
// rare enough that a full sweep is simpler than tracking which windows cover
// the changed day.
func InvalidateAnalytics(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "analytics:likes:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
