package redis

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

type countingSupplier struct {
	calls atomic.Int64
}

func (s *countingSupplier) GetQuiz(_ context.Context, topic, language string) (domain.Quiz, error) {
	s.calls.Add(1)
	return domain.Quiz{Topic: topic, Language: language, Questions: []domain.Question{{
		Prompt:       "Which planet is known as the 'Red Planet'?",
		Choices:      []string{"Venus", "Mars", "Mercury", "Jupiter"},
		CorrectIndex: 1,
	}}}, nil
}

func TestQuizCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	upstream := &countingSupplier{}
	cache := NewQuizCache(client, upstream, time.Minute)
	ctx := context.Background()

	first, err := cache.GetQuiz(ctx, "Space & Astronomy", "English")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !mr.Exists("quiz:Space & Astronomy:English") {
		t.Fatalf("expected cache key to be written")
	}

	second, err := cache.GetQuiz(ctx, "Space & Astronomy", "English")
	if err != nil {
		t.Fatalf("get cached: %v", err)
	}
	if upstream.calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", upstream.calls.Load())
	}
	if second.Questions[0].Prompt != first.Questions[0].Prompt {
		t.Fatalf("cached quiz differs: %+v vs %+v", second, first)
	}
	if second.Questions[0].CorrectIndex != 1 {
		t.Fatalf("correct index must survive the round trip, got %d", second.Questions[0].CorrectIndex)
	}
}

func TestQuizCacheExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	upstream := &countingSupplier{}
	cache := NewQuizCache(client, upstream, time.Minute)
	ctx := context.Background()

	if _, err := cache.GetQuiz(ctx, "Video Games", "English"); err != nil {
		t.Fatalf("get: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := cache.GetQuiz(ctx, "Video Games", "English"); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if upstream.calls.Load() != 2 {
		t.Fatalf("expected refill after TTL, got %d calls", upstream.calls.Load())
	}
}
