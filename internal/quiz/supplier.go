package quiz

import (
	"context"
	"fmt"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

// Supplier produces a quiz for a topic and language. Suppliers are layered:
// caches wrap generators, generators fall back to question banks.
type Supplier interface {
	GetQuiz(ctx context.Context, topic, language string) (domain.Quiz, error)
}

// Loader fetches pre-authored quiz content from a question bank.
type Loader interface {
	LoadQuiz(ctx context.Context, topic string) (domain.Quiz, error)
	// DefaultQuiz returns a fallback quiz for topics the bank does not know.
	DefaultQuiz(ctx context.Context) (domain.Quiz, error)
}

// Validate checks the structural contract every question must satisfy:
// exactly four choices with the correct index inside them.
func Validate(q domain.Quiz) error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", domain.ErrInvalidQuiz)
	}
	for i, question := range q.Questions {
		if question.Prompt == "" {
			return fmt.Errorf("%w: question %d has no prompt", domain.ErrInvalidQuiz, i)
		}
		if len(question.Choices) != domain.ChoiceCount {
			return fmt.Errorf("%w: question %d has %d choices", domain.ErrInvalidQuiz, i, len(question.Choices))
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Choices) {
			return fmt.Errorf("%w: question %d correct index %d out of range", domain.ErrInvalidQuiz, i, question.CorrectIndex)
		}
	}
	return nil
}

// LoaderSupplier adapts a bank Loader into a Supplier for deployments with no
// generator configured: unknown topics get the bank's default quiz.
type LoaderSupplier struct {
	bank Loader
}

func NewLoaderSupplier(bank Loader) *LoaderSupplier {
	return &LoaderSupplier{bank: bank}
}

func (s *LoaderSupplier) GetQuiz(ctx context.Context, topic, language string) (domain.Quiz, error) {
	if q, err := s.bank.LoadQuiz(ctx, topic); err == nil {
		return q, nil
	}
	q, err := s.bank.DefaultQuiz(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	q.Topic = topic
	return q, nil
}
