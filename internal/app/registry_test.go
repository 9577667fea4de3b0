package app_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

func TestCreateSessionReturnsShareableCode(t *testing.T) {
	service, _, _ := newTestService(t)

	code, err := service.CreateSession(context.Background(), twoQuestionQuiz())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !regexp.MustCompile(`^[0-9A-F]{6}$`).MatchString(code) {
		t.Fatalf("expected 6-char uppercase code, got %q", code)
	}

	session, ok := service.Session(code)
	if !ok {
		t.Fatalf("expected session stored under %q", code)
	}
	if session.State() != domain.StateWaiting || session.CurrentIndex() != -1 {
		t.Fatalf("new session must be waiting at index -1, got %v/%d", session.State(), session.CurrentIndex())
	}
}

func TestCreateSessionRejectsEmptyQuiz(t *testing.T) {
	service, _, _ := newTestService(t)
	if _, err := service.CreateSession(context.Background(), domain.Quiz{Topic: "empty"}); !errors.Is(err, domain.ErrInvalidQuiz) {
		t.Fatalf("expected ErrInvalidQuiz, got %v", err)
	}
}

func TestJoinValidation(t *testing.T) {
	service, _, _ := newTestService(t)
	code, _ := service.CreateSession(context.Background(), twoQuestionQuiz())

	if _, err := service.Join("NOPE99", "c1", "Alice", false); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := service.Join(code, "c1", "   ", false); !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	// Codes are case-insensitive.
	if _, err := service.Join(strings.ToLower(code), "c1", "Alice", false); err != nil {
		t.Fatalf("lowercase join: %v", err)
	}

	if err := service.Start("c1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Join(code, "c2", "Bob", false); !errors.Is(err, domain.ErrSessionInProgress) {
		t.Fatalf("expected ErrSessionInProgress, got %v", err)
	}
}

func TestAdminGuards(t *testing.T) {
	service, _, _ := newTestService(t)
	code, _ := service.CreateSession(context.Background(), twoQuestionQuiz())
	if _, err := service.Join(code, "admin", "Alice", false); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := service.Join(code, "player", "Bob", false); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := service.Start("player"); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("non-admin start: expected ErrNotAuthorized, got %v", err)
	}
	if err := service.SubmitAnswer("player", 1); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("submit before start: expected ErrInvalidState, got %v", err)
	}
	if err := service.SubmitAnswer("stranger", 1); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("unknown connection: expected ErrSessionNotFound, got %v", err)
	}

	if err := service.Start("admin"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := service.Advance("player"); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("non-admin advance: expected ErrNotAuthorized, got %v", err)
	}

	session, _ := service.Session(code)
	if session.State() != domain.StateInQuestion || session.CurrentIndex() != 0 {
		t.Fatalf("rejected operations must not change state, got %v/%d", session.State(), session.CurrentIndex())
	}
	if err := service.SubmitAnswer("admin", 9); !errors.Is(err, domain.ErrInvalidAnswer) {
		t.Fatalf("out-of-range choice: expected ErrInvalidAnswer, got %v", err)
	}
}

func TestAdminSuccessionOnDisconnect(t *testing.T) {
	service, gateway, _ := newTestService(t)
	code, _ := service.CreateSession(context.Background(), twoQuestionQuiz())

	for _, p := range []struct{ id, name string }{
		{"c1", "Alice"}, {"c2", "Bob"}, {"c3", "Cara"},
	} {
		if _, err := service.Join(code, p.id, p.name, false); err != nil {
			t.Fatalf("join %s: %v", p.name, err)
		}
	}

	service.RemoveConnection(context.Background(), "c1")

	session, ok := service.Session(code)
	if !ok {
		t.Fatalf("session must survive with players remaining")
	}
	if session.AdminID() != "c2" {
		t.Fatalf("expected earliest remaining joiner c2 to be admin, got %q", session.AdminID())
	}

	changed := gateway.named(domain.EventAdminChanged)
	if len(changed) != 1 {
		t.Fatalf("expected one admin-changed event, got %d", len(changed))
	}
	payload := changed[0].payload.(domain.AdminChanged)
	if payload.NewAdminName != "Bob" || payload.NewAdminID != "c2" {
		t.Fatalf("unexpected admin-changed payload: %+v", payload)
	}

	left := gateway.named(domain.EventPlayerLeft)
	if len(left) != 1 || left[0].payload.(domain.PlayerLeft).DisplayName != "Alice" {
		t.Fatalf("unexpected player-left events: %+v", left)
	}
}

func TestClaimAdminOnJoin(t *testing.T) {
	service, _, _ := newTestService(t)
	code, _ := service.CreateSession(context.Background(), twoQuestionQuiz())

	if _, err := service.Join(code, "c1", "Alice", false); err != nil {
		t.Fatalf("join: %v", err)
	}
	joined, err := service.Join(code, "c2", "Creator", true)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !joined.IsAdmin {
		t.Fatalf("claimAdmin join must take over the admin role")
	}
	session, _ := service.Session(code)
	if session.AdminID() != "c2" {
		t.Fatalf("expected c2 admin, got %q", session.AdminID())
	}
}

func TestStatsAndEviction(t *testing.T) {
	service, _, _ := newTestService(t)
	code, _ := service.CreateSession(context.Background(), twoQuestionQuiz())
	_, _ = service.Join(code, "c1", "Alice", false)
	_, _ = service.Join(code, "c2", "Bob", false)

	if sessions, players := service.Stats(); sessions != 1 || players != 2 {
		t.Fatalf("expected 1 session / 2 players, got %d/%d", sessions, players)
	}

	service.RemoveConnection(context.Background(), "c1")
	service.RemoveConnection(context.Background(), "c2")

	if sessions, players := service.Stats(); sessions != 0 || players != 0 {
		t.Fatalf("expected empty registry, got %d/%d", sessions, players)
	}
	if _, ok := service.Session(code); ok {
		t.Fatalf("empty session must be evicted")
	}
}
