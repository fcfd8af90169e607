package chat

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Presence tracks who is online.
type Presence interface {
	MarkOnline(ctx context.Context, userID string) error
	MarkOffline(ctx context.Context, userID string) error
	IsOnline(ctx context.Context, userID string) (bool, error)
}

// RegistryPresence answers from the local connection registry.
type RegistryPresence struct {
	Registry *Registry
}

func (p RegistryPresence) MarkOnline(ctx context.Context, userID string) error  { return nil }
func (p RegistryPresence) MarkOffline(ctx context.Context, userID string) error { return nil }

func (p RegistryPresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	return p.Registry.Online(userID), nil
}

// RedisPresence keeps a TTL key per online user. Sessions refresh it on every
// keep-alive ping, so a crashed process ages out within one TTL.
type RedisPresence struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPresence(client *redis.Client, ttl time.Duration) *RedisPresence {
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	return &RedisPresence{client: client, ttl: ttl}
}

func presenceKey(userID string) string { return "presence:" + userID }

func (p *RedisPresence) MarkOnline(ctx context.Context, userID string) error {
	return p.client.Set(ctx, presenceKey(userID), time.Now().UTC().Format(time.RFC3339), p.ttl).Err()
}

func (p *RedisPresence) MarkOffline(ctx context.Context, userID string) error {
	return p.client.Del(ctx, presenceKey(userID)).Err()
}

func (p *RedisPresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := p.client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
