package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KokserM/kazoot-quiz/internal/domain"
	"github.com/KokserM/kazoot-quiz/internal/quiz"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
)

// Config holds the generator settings. An empty APIKey disables generation
// entirely; the bank then serves every request.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Generator produces quizzes via the chat completions API. Topics present in
// the question bank are served from the bank without calling out, and any
// generation failure falls back to the bank's default quiz, so a session can
// always be created.
type Generator struct {
	cfg        Config
	httpClient *http.Client
	bank       quiz.Loader
}

func NewGenerator(cfg Config, bank quiz.Loader) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Generator{
		cfg:  cfg,
		bank: bank,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether an API key is configured.
func (g *Generator) Enabled() bool {
	return g.cfg.APIKey != ""
}

func (g *Generator) GetQuiz(ctx context.Context, topic, language string) (domain.Quiz, error) {
	if q, err := g.bank.LoadQuiz(ctx, topic); err == nil {
		return q, nil
	}
	if !g.Enabled() {
		return g.fallback(ctx, topic, language)
	}

	q, err := g.generate(ctx, topic, language)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("quiz generation failed, using fallback")
		return g.fallback(ctx, topic, language)
	}
	return q, nil
}

func (g *Generator) fallback(ctx context.Context, topic, language string) (domain.Quiz, error) {
	q, err := g.bank.DefaultQuiz(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	q.Topic = topic
	if language != "" {
		q.Language = language
	}
	return q, nil
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Generator) generate(ctx context.Context, topic, language string) (domain.Quiz, error) {
	body, err := json.Marshal(chatRequest{
		Model:       g.cfg.Model,
		Messages:    []chatMessage{{Role: "system", Content: quizPrompt(topic, language)}},
		Temperature: 0.7,
		MaxTokens:   1100,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	})
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("call completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Quiz{}, fmt.Errorf("completions returned %d: %s", resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Quiz{}, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return domain.Quiz{}, fmt.Errorf("completions returned no choices")
	}

	var q domain.Quiz
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &q); err != nil {
		return domain.Quiz{}, fmt.Errorf("model did not return valid JSON: %w", err)
	}
	if err := quiz.Validate(q); err != nil {
		return domain.Quiz{}, err
	}
	q.Topic = topic
	q.Language = language
	return q, nil
}

func quizPrompt(topic, language string) string {
	return fmt.Sprintf(`You are an imaginative quiz master AND an uncompromising copy-editor for %[2]s.
Tasks:
1. Draft 10 fact-based multiple-choice questions about "%[1]s".
   - Exactly four choices, ONE correct.
   - Randomise the order of the four choices; the correct answer must NOT always be first.
     Across the 10 questions aim for a roughly even spread of correctAnswerIndex values 0-3.
   - Facts only; vary difficulty; playful tone.
   - Ensure questions are unique and diverse, exploring different aspects of "%[1]s".
   - Everything in %[2]s.
2. Silently proof-read your own output for perfect %[2]s grammar.

Return only valid JSON that matches:
{
  "topic": "%[1]s",
  "language": "%[2]s",
  "questions": [
    { "question": "...?", "choices": ["...","...","...","..."], "correctAnswerIndex": 0 }
  ]
}`, topic, language)
}
