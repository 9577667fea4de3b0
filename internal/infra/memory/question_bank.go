package memory

import (
	"context"
	"sort"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

// QuestionBank is an in-memory bank of pre-authored quizzes keyed by topic.
// It backs deployments without Postgres and doubles as the fallback when the
// question generator is unavailable.
type QuestionBank struct {
	quizzes map[string]domain.Quiz
}

func NewQuestionBank(quizzes map[string]domain.Quiz) *QuestionBank {
	return &QuestionBank{quizzes: quizzes}
}

func (b *QuestionBank) LoadQuiz(_ context.Context, topic string) (domain.Quiz, error) {
	if quiz, ok := b.quizzes[topic]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

// DefaultQuiz returns the first topic in lexical order so the fallback is
// deterministic.
func (b *QuestionBank) DefaultQuiz(ctx context.Context) (domain.Quiz, error) {
	topics := b.Topics()
	if len(topics) == 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return b.LoadQuiz(ctx, topics[0])
}

// Topics lists the bank's topics in stable order.
func (b *QuestionBank) Topics() []string {
	topics := make([]string, 0, len(b.quizzes))
	for topic := range b.quizzes {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}
