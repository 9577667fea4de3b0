package app

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

type noopGateway struct{}

func (noopGateway) SendTo(string, string, any)                  {}
func (noopGateway) Broadcast(string, string, any)               {}
func (noopGateway) BroadcastExcept(string, string, string, any) {}

func TestScoreAnswerContract(t *testing.T) {
	limit := 20 * time.Second
	cases := []struct {
		correct bool
		elapsed time.Duration
		want    int
	}{
		{true, 0, 2000},
		{true, time.Second, 1950},
		{true, limit, 1000},
		{true, limit + 5*time.Second, 1000}, // late answers never score below base
		{false, 0, 0},
		{false, limit, 0},
	}
	for _, tc := range cases {
		if got := scoreAnswer(tc.correct, tc.elapsed, limit); got != tc.want {
			t.Errorf("scoreAnswer(%v, %v) = %d, want %d", tc.correct, tc.elapsed, got, tc.want)
		}
	}
}

func TestSessionCodeFormat(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := newSessionCode()
		if len(code) != codeLength {
			t.Fatalf("expected %d chars, got %q", codeLength, code)
		}
		for _, r := range code {
			if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
				t.Fatalf("unexpected character %q in code %q", r, code)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 95 {
		t.Fatalf("codes collide far too often: %d unique of 100", len(seen))
	}
}

func TestLeaderboardTiesKeepJoinOrder(t *testing.T) {
	s := newSession("TEST01", domain.Quiz{Questions: []domain.Question{{
		Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 0,
	}}}, 20*time.Second, noopGateway{}, clockwork.NewFakeClock())

	for i, name := range []string{"First", "Second", "Third"} {
		id := fmt.Sprintf("c%d", i)
		if _, err := s.join(id, name, false); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	s.participants["c0"].Score = 100
	s.participants["c1"].Score = 500
	s.participants["c2"].Score = 100

	lb := s.Leaderboard()
	wantOrder := []string{"Second", "First", "Third"}
	for i, want := range wantOrder {
		if lb[i].DisplayName != want {
			t.Fatalf("position %d: got %s, want %s (%+v)", i, lb[i].DisplayName, want, lb)
		}
		if lb[i].Rank != i+1 {
			t.Fatalf("rank at %d must be positional, got %d", i, lb[i].Rank)
		}
	}
}

// TestAdminInvariantUnderChurn drives random join/disconnect sequences and
// checks that exactly one participant is admin whenever any are present.
func TestAdminInvariantUnderChurn(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	service := NewGameService(noopGateway{}, nil, clockwork.NewFakeClock(), 20*time.Second)

	quiz := domain.Quiz{Topic: "churn", Questions: []domain.Question{{
		Prompt: "p", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 0,
	}}}
	code, err := service.CreateSession(context.Background(), quiz)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var joined []string
	next := 0
	for step := 0; step < 500; step++ {
		if len(joined) == 0 || rnd.Intn(2) == 0 {
			id := fmt.Sprintf("conn-%d", next)
			next++
			if _, err := service.Join(code, id, "Player "+id, false); err != nil {
				// The session disappears once everyone left; recreate it.
				if err == domain.ErrSessionNotFound {
					code, err = service.CreateSession(context.Background(), quiz)
					if err != nil {
						t.Fatalf("recreate: %v", err)
					}
					continue
				}
				t.Fatalf("join: %v", err)
			}
			joined = append(joined, id)
		} else {
			victim := rnd.Intn(len(joined))
			service.RemoveConnection(context.Background(), joined[victim])
			joined = append(joined[:victim], joined[victim+1:]...)
		}

		session, ok := service.Session(code)
		if !ok {
			if len(joined) != 0 {
				t.Fatalf("step %d: session vanished with %d players", step, len(joined))
			}
			continue
		}

		session.mu.Lock()
		admins := 0
		for _, p := range session.participants {
			if p.IsAdmin {
				admins++
			}
		}
		count := len(session.participants)
		adminID := session.adminID
		waiting := session.state == domain.StateWaiting
		cursor := session.currentIndex
		session.mu.Unlock()

		if count > 0 && admins != 1 {
			t.Fatalf("step %d: %d admins with %d players", step, admins, count)
		}
		if count == 0 && adminID != "" {
			t.Fatalf("step %d: empty session still has admin %q", step, adminID)
		}
		if waiting != (cursor == -1) {
			t.Fatalf("step %d: waiting=%v but cursor=%d", step, waiting, cursor)
		}
	}
}
