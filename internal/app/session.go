package app

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

const (
	basePoints          = 1000
	speedBonusPerSecond = 50
)

// Session is the state machine for one running quiz. All mutation goes through
// its mutex; broadcasts happen under the lock, which is safe because the
// Gateway contract forbids blocking sends.
type Session struct {
	code      string
	quiz      domain.Quiz
	timeLimit time.Duration
	gateway   Gateway
	clock     clockwork.Clock

	mu            sync.Mutex
	closed        bool
	state         domain.GameState
	currentIndex  int
	questionStart time.Time
	participants  map[string]*domain.Participant
	joinOrder     []string
	adminID       string

	deadlineEpoch uint64
	deadlineTimer clockwork.Timer
	deadlineStop  chan struct{}
}

func newSession(code string, quiz domain.Quiz, timeLimit time.Duration, gateway Gateway, clock clockwork.Clock) *Session {
	return &Session{
		code:         code,
		quiz:         quiz,
		timeLimit:    timeLimit,
		gateway:      gateway,
		clock:        clock,
		state:        domain.StateWaiting,
		currentIndex: -1,
		participants: make(map[string]*domain.Participant),
	}
}

// Code returns the shareable session code.
func (s *Session) Code() string {
	return s.code
}

// State reports the current lifecycle state.
func (s *Session) State() domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentIndex reports the question cursor, -1 before start.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

// PlayerCount reports how many participants are joined.
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

// AdminID returns the connection id of the current admin, empty when none.
func (s *Session) AdminID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminID
}

// Leaderboard returns the current standings, recomputed on every call.
func (s *Session) Leaderboard() []domain.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaderboardLocked()
}

func (s *Session) join(connectionID, displayName string, claimAdmin bool) (domain.JoinedGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.JoinedGame{}, domain.ErrSessionNotFound
	}
	if s.state != domain.StateWaiting {
		return domain.JoinedGame{}, domain.ErrSessionInProgress
	}

	if existing, ok := s.participants[connectionID]; ok {
		// Same connection joining twice just refreshes the name.
		existing.DisplayName = displayName
	} else {
		s.participants[connectionID] = &domain.Participant{
			ConnectionID: connectionID,
			DisplayName:  displayName,
			Answers:      make(map[int]domain.Answer),
		}
		s.joinOrder = append(s.joinOrder, connectionID)
	}

	if claimAdmin || s.adminID == "" {
		s.setAdminLocked(connectionID)
	}

	s.gateway.BroadcastExcept(s.code, connectionID, domain.EventPlayerJoined, domain.PlayerJoined{
		DisplayName: displayName,
		PlayerCount: len(s.participants),
	})

	log.Debug().
		Str("session", s.code).
		Str("conn", connectionID).
		Str("name", displayName).
		Bool("admin", s.adminID == connectionID).
		Msg("player joined")

	return domain.JoinedGame{
		SessionCode:   s.code,
		Topic:         s.quiz.Topic,
		Language:      s.quiz.Language,
		PlayerCount:   len(s.participants),
		QuestionCount: len(s.quiz.Questions),
		IsAdmin:       s.adminID == connectionID,
	}, nil
}

func (s *Session) start(connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateWaiting {
		return domain.ErrInvalidState
	}
	if connectionID != s.adminID {
		return domain.ErrNotAuthorized
	}

	s.currentIndex = 0
	s.openQuestionLocked()
	log.Info().Str("session", s.code).Int("questions", len(s.quiz.Questions)).Msg("game started")
	return nil
}

func (s *Session) submitAnswer(connectionID string, choiceIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateInQuestion {
		return domain.ErrInvalidState
	}
	participant, ok := s.participants[connectionID]
	if !ok {
		return domain.ErrParticipantNotFound
	}
	question := s.quiz.Questions[s.currentIndex]
	if choiceIndex < 0 || choiceIndex >= len(question.Choices) {
		return domain.ErrInvalidAnswer
	}

	// The deadline is enforced by the results transition, not here: an answer
	// racing the timer is still scored, with the time bonus clamped at zero.
	elapsed := s.clock.Now().Sub(s.questionStart)
	correct := choiceIndex == question.CorrectIndex
	points := scoreAnswer(correct, elapsed, s.timeLimit)

	// Only the latest submission per question counts.
	if previous, ok := participant.Answers[s.currentIndex]; ok {
		participant.Score -= previous.Points
	}
	participant.Answers[s.currentIndex] = domain.Answer{
		ChoiceIndex:   choiceIndex,
		Correct:       correct,
		Points:        points,
		LatencyMillis: elapsed.Milliseconds(),
	}
	participant.Score += points

	log.Debug().
		Str("session", s.code).
		Str("conn", connectionID).
		Int("question", s.currentIndex).
		Int("choice", choiceIndex).
		Int("points", points).
		Msg("answer recorded")
	return nil
}

func (s *Session) advance(connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if connectionID != s.adminID {
		return domain.ErrNotAuthorized
	}

	switch s.state {
	case domain.StateInQuestion:
		// Admin fast-forward: close the question before the deadline.
		s.cancelDeadlineLocked()
		s.showResultsLocked()
	case domain.StateShowingResults:
		if s.currentIndex < len(s.quiz.Questions)-1 {
			s.currentIndex++
			s.openQuestionLocked()
		} else {
			s.state = domain.StateEnded
			s.gateway.Broadcast(s.code, domain.EventGameEnd, domain.GameEnd{
				Leaderboard: s.leaderboardLocked(),
			})
			log.Info().Str("session", s.code).Msg("game ended")
		}
	default:
		return domain.ErrInvalidState
	}
	return nil
}

// remove drops a participant and handles admin succession. It reports whether
// the participant existed and whether the session is now empty.
func (s *Session) remove(connectionID string) (existed, empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, ok := s.participants[connectionID]
	if !ok {
		return false, len(s.participants) == 0
	}
	delete(s.participants, connectionID)
	for i, id := range s.joinOrder {
		if id == connectionID {
			s.joinOrder = append(s.joinOrder[:i], s.joinOrder[i+1:]...)
			break
		}
	}

	wasAdmin := s.adminID == connectionID
	if len(s.participants) == 0 {
		s.adminID = ""
		s.closed = true
		s.cancelDeadlineLocked()
		log.Debug().Str("session", s.code).Msg("last player left, session closed")
		return true, true
	}

	s.gateway.Broadcast(s.code, domain.EventPlayerLeft, domain.PlayerLeft{
		DisplayName: participant.DisplayName,
		PlayerCount: len(s.participants),
	})

	if wasAdmin {
		// Deterministic succession: the earliest remaining joiner.
		next := s.joinOrder[0]
		s.setAdminLocked(next)
		s.gateway.Broadcast(s.code, domain.EventAdminChanged, domain.AdminChanged{
			NewAdminName: s.participants[next].DisplayName,
			NewAdminID:   next,
		})
		log.Info().Str("session", s.code).Str("admin", next).Msg("admin reassigned")
	}
	return true, false
}

func (s *Session) setAdminLocked(connectionID string) {
	if prev, ok := s.participants[s.adminID]; ok {
		prev.IsAdmin = false
	}
	s.adminID = connectionID
	s.participants[connectionID].IsAdmin = true
}

func (s *Session) openQuestionLocked() {
	s.state = domain.StateInQuestion
	s.questionStart = s.clock.Now()
	s.scheduleDeadlineLocked()

	question := s.quiz.Questions[s.currentIndex]
	s.gateway.Broadcast(s.code, domain.EventQuestionStart, domain.QuestionStart{
		QuestionNumber:  s.currentIndex + 1,
		TotalQuestions:  len(s.quiz.Questions),
		Prompt:          question.Prompt,
		Choices:         question.Choices,
		TimeLimitMillis: s.timeLimit.Milliseconds(),
	})
}

func (s *Session) showResultsLocked() {
	s.state = domain.StateShowingResults
	question := s.quiz.Questions[s.currentIndex]
	leaderboard := s.leaderboardLocked()
	isLast := s.currentIndex == len(s.quiz.Questions)-1

	distribution := make([]int, len(question.Choices))
	for _, id := range s.joinOrder {
		if answer, ok := s.participants[id].Answers[s.currentIndex]; ok {
			distribution[answer.ChoiceIndex]++
		}
	}

	// Results are individualized so every client learns its own choice
	// alongside the shared statistics.
	for _, id := range s.joinOrder {
		results := domain.QuestionResults{
			CorrectIndex:   question.CorrectIndex,
			CorrectText:    question.Choices[question.CorrectIndex],
			Distribution:   distribution,
			Leaderboard:    leaderboard,
			IsLastQuestion: isLast,
			AllChoices:     question.Choices,
		}
		if answer, ok := s.participants[id].Answers[s.currentIndex]; ok {
			chosen := answer.ChoiceIndex
			results.PlayerAnswer = &chosen
		}
		s.gateway.SendTo(id, domain.EventQuestionResults, results)
	}

	log.Debug().
		Str("session", s.code).
		Int("question", s.currentIndex).
		Ints("distribution", distribution).
		Msg("question closed")
}

// leaderboardLocked sorts by descending score with insertion-order ties and
// assigns purely positional 1-based ranks.
func (s *Session) leaderboardLocked() []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(s.joinOrder))
	for _, id := range s.joinOrder {
		participant := s.participants[id]
		entries = append(entries, domain.LeaderboardEntry{
			DisplayName: participant.DisplayName,
			Score:       participant.Score,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// scoreAnswer reproduces the scoring contract: 0 when incorrect, otherwise a
// 1000-point base plus 50 points per unspent second.
func scoreAnswer(correct bool, elapsed, limit time.Duration) int {
	if !correct {
		return 0
	}
	bonusSeconds := (limit - elapsed).Seconds()
	if bonusSeconds < 0 {
		bonusSeconds = 0
	}
	return int(math.Round(basePoints + bonusSeconds*speedBonusPerSecond))
}
