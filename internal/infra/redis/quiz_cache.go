package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/KokserM/kazoot-quiz/internal/domain"
	"github.com/KokserM/kazoot-quiz/internal/quiz"
)

// QuizCache caches supplied quizzes in Redis as JSON blobs keyed by topic and
// language, falling back to the upstream supplier on a miss. Generated
// quizzes are expensive, so cache fills are collapsed with singleflight.
type QuizCache struct {
	client   *redis.Client
	upstream quiz.Supplier
	ttl      time.Duration
	sf       singleflight.Group
	rnd      *rand.Rand
}

func NewQuizCache(client *redis.Client, upstream quiz.Supplier, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client:   client,
		upstream: upstream,
		ttl:      ttl,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) GetQuiz(ctx context.Context, topic, language string) (domain.Quiz, error) {
	key := c.key(topic, language)

	if q, ok := c.lookup(ctx, key); ok {
		return q, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if q, ok := c.lookup(ctx, key); ok {
			return q, nil
		}

		q, err := c.upstream.GetQuiz(ctx, topic, language)
		if err != nil {
			return domain.Quiz{}, err
		}

		if data, err := json.Marshal(q); err == nil {
			// best-effort cache fill
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return q, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) lookup(ctx context.Context, key string) (domain.Quiz, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Quiz{}, false
	}
	var q domain.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return domain.Quiz{}, false
	}
	return q, true
}

func (c *QuizCache) key(topic, language string) string {
	return "quiz:" + topic + ":" + language
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
