package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisDenylist implements Denylist on top of a go-redis client. Expiry of
// entries is delegated entirely to Redis key TTLs.
type redisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist returns a Redis-backed denylist.
func NewRedisDenylist(client *redis.Client) Denylist {
	return &redisDenylist{client: client}
}

func (d *redisDenylist) Exists(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *redisDenylist) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return d.client.Set(ctx, key, value, ttl).Err()
}
