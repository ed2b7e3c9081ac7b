package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	notifier := NewNotifier(rdb)
	ctx := context.Background()

	sub := rdb.PSubscribe(ctx, "events:*")
	t.Cleanup(func() { _ = sub.Close() })
	// Wait for the subscription to be active before publishing
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	ch := sub.Channel()

	notifier.Publish(ctx, "post.liked", map[string]interface{}{
		"post_id": 42,
		"user_id": 7,
	})

	select {
	case msg := <-ch:
		assert.Equal(t, "events:post.liked", msg.Channel)

		var event Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, "post.liked", event.Name)
		assert.False(t, event.Timestamp.IsZero())

		payload, ok := event.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.EqualValues(t, 42, payload["post_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestNotifier_PublishWithoutRedis(t *testing.T) {
	notifier := NewNotifier(nil)
	// Must be a no-op, not a panic
	notifier.Publish(context.Background(), "post.created", nil)
}

func TestNotifier_StartSubscriber(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	notifier := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	received := make(chan string, 1)
	require.NoError(t, notifier.StartSubscriber(ctx, func(channel, payload string) {
		received <- channel
	}))

	// Give the subscriber goroutine a moment to attach
	time.Sleep(50 * time.Millisecond)
	notifier.Publish(ctx, "post.unliked", map[string]interface{}{"post_id": 1})

	select {
	case channel := <-received:
		assert.Equal(t, "events:post.unliked", channel)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not receive event")
	}
}
