package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session code is unknown or expired.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionInProgress is returned when joining a session that already started.
	ErrSessionInProgress = errors.New("game already in progress")
	// ErrInvalidName is returned when a display name is empty after trimming.
	ErrInvalidName = errors.New("display name is required")
	// ErrNotAuthorized is returned when a non-admin attempts start or advance.
	ErrNotAuthorized = errors.New("only the game creator can do that")
	// ErrInvalidState is returned when an action is attempted outside its valid state.
	ErrInvalidState = errors.New("action not allowed in current game state")
	// ErrCapacityExceeded is returned when session code generation keeps colliding.
	ErrCapacityExceeded = errors.New("session code space exhausted")
	// ErrParticipantNotFound is returned when a connection acts before joining.
	ErrParticipantNotFound = errors.New("participant not found in session")
	// ErrInvalidAnswer is returned when a chosen index is outside the choice range.
	ErrInvalidAnswer = errors.New("answer index out of range")
	// ErrQuizNotFound indicates quiz content could not be loaded for a topic.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidQuiz indicates quiz content failed structural validation.
	ErrInvalidQuiz = errors.New("invalid quiz data structure")
)
