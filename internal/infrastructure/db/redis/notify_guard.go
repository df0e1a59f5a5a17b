package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = time.Hour

// NotifyGuard suppresses duplicate notification sends using short-lived Redis
// keys. Key format: notify:<kind>:<recipient>:<token>
//
// The guard is advisory: callers treat any Redis failure as a miss and send
// anyway, so a Redis outage degrades to occasional duplicate mail rather than
// lost mail.
type NotifyGuard struct {
	client *redis.Client
}

// NewNotifyGuard creates a NotifyGuard wrapping the given Redis client.
func NewNotifyGuard(client *redis.Client) *NotifyGuard {
	return &NotifyGuard{client: client}
}

// IsDuplicate reports whether this exact notification was already delivered
// inside the TTL window.
func (g *NotifyGuard) IsDuplicate(ctx context.Context, kind, recipient, token string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(kind, recipient, token)).Result()
	if err != nil {
		return false, fmt.Errorf("notify guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records a delivered notification (expires after guardTTL).
func (g *NotifyGuard) Mark(ctx context.Context, kind, recipient, token string) error {
	return g.client.Set(ctx, g.key(kind, recipient, token), "1", guardTTL).Err()
}

func (g *NotifyGuard) key(kind, recipient, token string) string {
	return fmt.Sprintf("notify:%s:%s:%s", kind, recipient, token)
}
