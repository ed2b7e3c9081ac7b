// Package notifications publishes domain events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"
	"time"

	"pulse/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Event is the wire format for a published domain event.
type Event struct {
	Name      string      `json:"name"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends a named event to the events channel. A nil Redis client or a
// publish failure is logged and swallowed, events are best effort.
func (n *Notifier) Publish(ctx context.Context, event string, payload interface{}) {
	if n == nil || n.rdb == nil {
		return
	}

	data, err := json.Marshal(Event{
		Name:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		middleware.Logger.Warn("failed to encode event", "event", event, "error", err)
		return
	}

	if err := n.rdb.Publish(ctx, "events:"+event, data).Err(); err != nil {
		middleware.Logger.Warn("failed to publish event", "event", event, "error", err)
	}
}

// StartSubscriber subscribes to the pattern `events:*` and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "events:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in event subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
