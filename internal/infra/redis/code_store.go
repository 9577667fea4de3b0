package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore marks live session codes in Redis. The keys are best-effort
// liveness markers; sessions themselves stay in process memory.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	return &CodeStore{client: client, ttl: ttl}
}

func (s *CodeStore) MarkLive(ctx context.Context, code string) error {
	return s.client.Set(ctx, s.key(code), "1", s.ttl).Err()
}

func (s *CodeStore) MarkDead(ctx context.Context, code string) error {
	return s.client.Del(ctx, s.key(code)).Err()
}

func (s *CodeStore) key(code string) string {
	return "game:session:" + code
}
