// Package redis provides a Redis-backed session store, selected when
// REDIS_URL is configured. Expiry rides on the key TTL.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/security/session"
)

const keyPrefix = "session:"

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Connect parses a redis URL, opens a client and pings it.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (r *SessionRepository) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	return r.client.Set(ctx, keyPrefix+token, userID, validity).Err()
}

func (r *SessionRepository) Find(ctx context.Context, token string) (session.Record, error) {
	pipe := r.client.Pipeline()
	get := pipe.Get(ctx, keyPrefix+token)
	ttl := pipe.PTTL(ctx, keyPrefix+token)
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Record{}, auth.ErrNotFound
		}
		return session.Record{}, err
	}

	return session.Record{
		UserID:    get.Val(),
		ExpiresAt: time.Now().Add(ttl.Val()),
	}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	n, err := r.client.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return auth.ErrNotFound
	}
	return nil
}
