package domain

// Event names carried on the wire. Kept stable for client compatibility.
const (
	EventJoinedGame      = "joined-game"
	EventPlayerJoined    = "player-joined"
	EventQuestionStart   = "question-start"
	EventAnswerSubmitted = "answer-submitted"
	EventQuestionResults = "question-results"
	EventGameEnd         = "game-end"
	EventPlayerLeft      = "player-left"
	EventAdminChanged    = "admin-changed"
	EventError           = "error"
)

// JoinedGame is the acknowledgment sent to a participant that just joined.
type JoinedGame struct {
	SessionCode   string `json:"sessionId"`
	Topic         string `json:"topic"`
	Language      string `json:"language"`
	PlayerCount   int    `json:"playerCount"`
	QuestionCount int    `json:"questionCount"`
	IsAdmin       bool   `json:"isAdmin"`
}

// PlayerJoined notifies existing participants about a newcomer.
type PlayerJoined struct {
	DisplayName string `json:"username"`
	PlayerCount int    `json:"playerCount"`
}

// QuestionStart opens a question for everyone in the session.
type QuestionStart struct {
	QuestionNumber  int      `json:"questionNumber"`
	TotalQuestions  int      `json:"totalQuestions"`
	Prompt          string   `json:"question"`
	Choices         []string `json:"choices"`
	TimeLimitMillis int64    `json:"timeLimit"`
}

// AnswerSubmitted acknowledges a submission to the submitter only.
type AnswerSubmitted struct {
	Success bool `json:"success"`
}

// QuestionResults closes a question. PlayerAnswer is individualized per
// recipient and nil for participants who never answered.
type QuestionResults struct {
	CorrectIndex   int                `json:"correctAnswer"`
	CorrectText    string             `json:"correctAnswerText"`
	Distribution   []int              `json:"answerStats"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
	IsLastQuestion bool               `json:"isLastQuestion"`
	PlayerAnswer   *int               `json:"playerAnswer"`
	AllChoices     []string           `json:"allChoices"`
}

// GameEnd carries the final standings. Terminal event for a session.
type GameEnd struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// PlayerLeft notifies remaining participants about a departure.
type PlayerLeft struct {
	DisplayName string `json:"username"`
	PlayerCount int    `json:"playerCount"`
}

// AdminChanged names the participant promoted after the admin left.
type AdminChanged struct {
	NewAdminName string `json:"newAdminUsername"`
	NewAdminID   string `json:"newAdminId"`
}

// ErrorEvent reports a failed operation to the initiating connection only.
type ErrorEvent struct {
	Message string `json:"message"`
}
