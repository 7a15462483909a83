package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
)

// RedisNotifier pushes intents as JSON onto a Redis list consumed by the
// messaging service.
type RedisNotifier struct {
	client redis.Cmdable
	queue  string
}

func NewRedisNotifier(client redis.Cmdable, queue string) *RedisNotifier {
	return &RedisNotifier{client: client, queue: queue}
}

func (n *RedisNotifier) Notify(ctx context.Context, intent notification.Intent) error {
	body, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encode intent %s: %w", intent.ID, err)
	}
	if err := n.client.RPush(ctx, n.queue, body).Err(); err != nil {
		return fmt.Errorf("push intent %s: %w", intent.ID, err)
	}
	return nil
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

var _ notification.Notifier = (*RedisNotifier)(nil)
