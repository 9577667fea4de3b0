package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KokserM/kazoot-quiz/internal/domain"
	"github.com/KokserM/kazoot-quiz/internal/quiz"
)

// QuizCache caches supplied quizzes with TTL so generating or loading the
// same topic repeatedly does not hit the upstream every time.
type QuizCache struct {
	upstream quiz.Supplier
	ttl      time.Duration
	clock    func() time.Time
	sf       singleflight.Group
	rnd      *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizCache(upstream quiz.Supplier, ttl time.Duration) *QuizCache {
	return &QuizCache{
		upstream: upstream,
		ttl:      ttl,
		clock:    time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:    make(map[string]cachedQuiz),
	}
}

func (c *QuizCache) GetQuiz(ctx context.Context, topic, language string) (domain.Quiz, error) {
	key := topic + "|" + language
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.quiz, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.quiz, nil
		}
		c.mu.RUnlock()

		q, err := c.upstream.GetQuiz(ctx, topic, language)
		if err != nil {
			return domain.Quiz{}, err
		}

		c.mu.Lock()
		c.cache[key] = cachedQuiz{
			quiz:      q,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return q, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
