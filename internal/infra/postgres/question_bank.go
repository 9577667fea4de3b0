package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

// QuestionBank loads pre-authored quizzes stored as JSONB rows per topic.
type QuestionBank struct {
	pool *pgxpool.Pool
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{pool: pool}
}

func (b *QuestionBank) LoadQuiz(ctx context.Context, topic string) (domain.Quiz, error) {
	var raw []byte
	err := b.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE topic=$1`, topic).Scan(&raw)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load question bank: %w", domain.ErrQuizNotFound)
	}
	return unmarshalQuiz(raw)
}

// DefaultQuiz returns the lexically first bank row so the fallback topic is
// stable across calls.
func (b *QuestionBank) DefaultQuiz(ctx context.Context) (domain.Quiz, error) {
	var raw []byte
	err := b.pool.QueryRow(ctx, `SELECT data FROM question_banks ORDER BY topic LIMIT 1`).Scan(&raw)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load default question bank: %w", domain.ErrQuizNotFound)
	}
	return unmarshalQuiz(raw)
}

// Topics lists every stored topic in stable order.
func (b *QuestionBank) Topics(ctx context.Context) ([]string, error) {
	rows, err := b.pool.Query(ctx, `SELECT topic FROM question_banks ORDER BY topic`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

func unmarshalQuiz(raw []byte) (domain.Quiz, error) {
	var q domain.Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return q, nil
}
