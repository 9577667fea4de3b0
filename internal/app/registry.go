package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

const (
	// DefaultQuestionTimeLimit matches the 20 second window clients expect.
	DefaultQuestionTimeLimit = 20 * time.Second

	codeLength      = 6
	maxCodeAttempts = 5
)

// CodeStore marks live session codes in a shared store so codes stay unique
// beyond this process. Implementations are best-effort; failures are logged,
// not propagated.
type CodeStore interface {
	MarkLive(ctx context.Context, code string) error
	MarkDead(ctx context.Context, code string) error
}

// GameService owns every live session: it maps codes to sessions and
// connections to the session they joined, and routes all inbound triggers.
// The maps are guarded by the service mutex; per-session mutation is
// serialized by each session's own lock, so distinct sessions never block
// each other.
type GameService struct {
	gateway   Gateway
	codes     CodeStore
	clock     clockwork.Clock
	timeLimit time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
	byConn   map[string]string
}

// NewGameService wires the registry. codes may be nil when no shared code
// store is configured; timeLimit zero falls back to the default.
func NewGameService(gateway Gateway, codes CodeStore, clock clockwork.Clock, timeLimit time.Duration) *GameService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if timeLimit <= 0 {
		timeLimit = DefaultQuestionTimeLimit
	}
	return &GameService{
		gateway:   gateway,
		codes:     codes,
		clock:     clock,
		timeLimit: timeLimit,
		sessions:  make(map[string]*Session),
		byConn:    make(map[string]string),
	}
}

// CreateSession stores a new waiting session and returns its shareable code.
// Code generation retries a bounded number of times on collision before
// giving up with ErrCapacityExceeded.
func (g *GameService) CreateSession(ctx context.Context, quiz domain.Quiz) (string, error) {
	if len(quiz.Questions) == 0 {
		return "", domain.ErrInvalidQuiz
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := newSessionCode()

		g.mu.Lock()
		if _, taken := g.sessions[code]; taken {
			g.mu.Unlock()
			continue
		}
		g.sessions[code] = newSession(code, quiz, g.timeLimit, g.gateway, g.clock)
		g.mu.Unlock()

		if g.codes != nil {
			if err := g.codes.MarkLive(ctx, code); err != nil {
				log.Warn().Err(err).Str("session", code).Msg("failed to mark session code live")
			}
		}
		log.Info().Str("session", code).Str("topic", quiz.Topic).Int("questions", len(quiz.Questions)).Msg("session created")
		return code, nil
	}
	return "", domain.ErrCapacityExceeded
}

// Join adds a connection to a waiting session. Codes are case-insensitive.
func (g *GameService) Join(code, connectionID, displayName string, claimAdmin bool) (domain.JoinedGame, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return domain.JoinedGame{}, domain.ErrInvalidName
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	g.mu.RLock()
	session, ok := g.sessions[code]
	g.mu.RUnlock()
	if !ok {
		return domain.JoinedGame{}, domain.ErrSessionNotFound
	}

	joined, err := session.join(connectionID, displayName, claimAdmin)
	if err != nil {
		return domain.JoinedGame{}, err
	}

	g.mu.Lock()
	g.byConn[connectionID] = code
	g.mu.Unlock()
	return joined, nil
}

// Start begins the quiz. Admin-only.
func (g *GameService) Start(connectionID string) error {
	session, err := g.sessionFor(connectionID)
	if err != nil {
		return err
	}
	return session.start(connectionID)
}

// SubmitAnswer records an answer for the active question.
func (g *GameService) SubmitAnswer(connectionID string, choiceIndex int) error {
	session, err := g.sessionFor(connectionID)
	if err != nil {
		return err
	}
	return session.submitAnswer(connectionID, choiceIndex)
}

// Advance moves the session forward. Admin-only; closes the open question
// early, shows the next question, or ends the game depending on state.
func (g *GameService) Advance(connectionID string) error {
	session, err := g.sessionFor(connectionID)
	if err != nil {
		return err
	}
	return session.advance(connectionID)
}

// RemoveConnection handles disconnects: it drops the participant, lets the
// session reassign its admin, and evicts the session once empty.
func (g *GameService) RemoveConnection(ctx context.Context, connectionID string) {
	g.mu.Lock()
	code, ok := g.byConn[connectionID]
	delete(g.byConn, connectionID)
	session := g.sessions[code]
	g.mu.Unlock()
	if !ok || session == nil {
		return
	}

	if _, empty := session.remove(connectionID); empty {
		g.mu.Lock()
		delete(g.sessions, code)
		g.mu.Unlock()

		if g.codes != nil {
			if err := g.codes.MarkDead(ctx, code); err != nil {
				log.Warn().Err(err).Str("session", code).Msg("failed to clear session code")
			}
		}
		log.Info().Str("session", code).Msg("empty session evicted")
	}
}

// Session exposes a live session for tests and status endpoints.
func (g *GameService) Session(code string) (*Session, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	session, ok := g.sessions[strings.ToUpper(code)]
	return session, ok
}

// Stats reports live session and player counts for health reporting.
func (g *GameService) Stats() (sessions, players int) {
	g.mu.RLock()
	snapshot := make([]*Session, 0, len(g.sessions))
	for _, session := range g.sessions {
		snapshot = append(snapshot, session)
	}
	g.mu.RUnlock()

	for _, session := range snapshot {
		players += session.PlayerCount()
	}
	return len(snapshot), players
}

func (g *GameService) sessionFor(connectionID string) (*Session, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	code, ok := g.byConn[connectionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	session, ok := g.sessions[code]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func newSessionCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:codeLength])
}
