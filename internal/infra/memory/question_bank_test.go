package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/KokserM/kazoot-quiz/internal/domain"
	"github.com/KokserM/kazoot-quiz/internal/quiz"
)

func TestQuestionBankLookup(t *testing.T) {
	ctx := context.Background()
	bank := NewQuestionBank(DemoQuizzes())

	q, err := bank.LoadQuiz(ctx, "Video Games")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(q.Questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(q.Questions))
	}
	if err := quiz.Validate(q); err != nil {
		t.Fatalf("demo quiz failed validation: %v", err)
	}

	if _, err := bank.LoadQuiz(ctx, "Quantum Knitting"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuestionBankDefaultIsDeterministic(t *testing.T) {
	ctx := context.Background()
	bank := NewQuestionBank(DemoQuizzes())

	first, err := bank.DefaultQuiz(ctx)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	second, _ := bank.DefaultQuiz(ctx)
	if first.Topic != second.Topic {
		t.Fatalf("default must be stable: %q vs %q", first.Topic, second.Topic)
	}
	if first.Topic != bank.Topics()[0] {
		t.Fatalf("default should be the first topic, got %q", first.Topic)
	}
}
