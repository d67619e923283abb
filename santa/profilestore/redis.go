package profilestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps documents in Redis under "{prefix}:{namespace}:docs" (list) and
// "{prefix}:{namespace}:digest" (string). The namespace is normally the session id.
type Redis struct {
	client    redis.Cmdable
	prefix    string
	namespace string
	ttl       time.Duration
}

type RedisConfig struct {
	Prefix string        // key prefix, default "santa"
	TTL    time.Duration // expiry applied on every write, 0 = no expiry
}

func NewRedis(client redis.Cmdable, namespace string, cfg RedisConfig) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = "santa"
	}
	return &Redis{client: client, prefix: cfg.Prefix, namespace: namespace, ttl: cfg.TTL}
}

func (r *Redis) docsKey() string {
	return fmt.Sprintf("%s:%s:docs", r.prefix, r.namespace)
}

func (r *Redis) digestKey() string {
	return fmt.Sprintf("%s:%s:digest", r.prefix, r.namespace)
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.docsKey(), r.digestKey()).Err(); err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}

func (r *Redis) Append(ctx context.Context, doc string) error {
	if err := r.client.RPush(ctx, r.docsKey(), doc).Err(); err != nil {
		return fmt.Errorf("redis append: %w", err)
	}
	if r.ttl > 0 {
		if err := r.client.Expire(ctx, r.docsKey(), r.ttl).Err(); err != nil {
			return fmt.Errorf("redis expire: %w", err)
		}
	}
	return nil
}

func (r *Redis) All(ctx context.Context) ([]string, error) {
	docs, err := r.client.LRange(ctx, r.docsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list docs: %w", err)
	}
	return docs, nil
}

func (r *Redis) SetDigest(ctx context.Context, digest string) error {
	if err := r.client.Set(ctx, r.digestKey(), digest, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set digest: %w", err)
	}
	return nil
}

func (r *Redis) Digest(ctx context.Context) (string, error) {
	digest, err := r.client.Get(ctx, r.digestKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get digest: %w", err)
	}
	return digest, nil
}
