package domain

// GameState tracks where a session is in its lifecycle.
type GameState int

const (
	StateWaiting GameState = iota
	StateInQuestion
	StateShowingResults
	StateEnded
)

func (s GameState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateInQuestion:
		return "question"
	case StateShowingResults:
		return "results"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// ChoiceCount is the number of answer choices every question carries.
const ChoiceCount = 4

// Question is a single multiple-choice question. Immutable once a session starts.
type Question struct {
	Prompt       string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctAnswerIndex"`
}

// Quiz is an ordered set of questions on a topic.
type Quiz struct {
	Topic     string     `json:"topic"`
	Language  string     `json:"language"`
	Questions []Question `json:"questions"`
}

// Answer records one participant's latest submission for one question.
type Answer struct {
	ChoiceIndex   int   `json:"answerIndex"`
	Correct       bool  `json:"isCorrect"`
	Points        int   `json:"points"`
	LatencyMillis int64 `json:"submissionTime"`
}

// Participant is one joined connection with its score and answer history.
// Answers is sparse: a question the participant never answered has no entry.
type Participant struct {
	ConnectionID string
	DisplayName  string
	Score        int
	Answers      map[int]Answer
	IsAdmin      bool
}

// LeaderboardEntry annotates a participant with its 1-based rank.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"username"`
	Score       int    `json:"score"`
}
