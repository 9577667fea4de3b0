package app

import (
	"github.com/rs/zerolog/log"

	"github.com/KokserM/kazoot-quiz/internal/domain"
)

// Deadline scheduling for the active question. Each session has at most one
// pending one-shot timer; every schedule bumps an epoch so a callback that
// lost the race against a manual advance (or a newer question) is a no-op.

func (s *Session) scheduleDeadlineLocked() {
	s.cancelDeadlineLocked()

	s.deadlineEpoch++
	epoch := s.deadlineEpoch
	timer := s.clock.NewTimer(s.timeLimit)
	stop := make(chan struct{})
	s.deadlineTimer = timer
	s.deadlineStop = stop

	go func() {
		select {
		case <-timer.Chan():
			s.deadlineExpired(epoch)
		case <-stop:
		}
	}()
}

// cancelDeadlineLocked stops and drains the pending timer, following the
// pattern from the time.Timer.Stop documentation.
func (s *Session) cancelDeadlineLocked() {
	if s.deadlineTimer == nil {
		return
	}
	if !s.deadlineTimer.Stop() {
		select {
		case <-s.deadlineTimer.Chan():
		default:
		}
	}
	close(s.deadlineStop)
	s.deadlineTimer = nil
	s.deadlineStop = nil
}

// deadlineExpired force-closes the question the timer was armed for. A stale
// epoch, a state that already moved on, or a closed session all make it a
// silent no-op so a timer can never double-fire a transition.
func (s *Session) deadlineExpired(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || epoch != s.deadlineEpoch || s.state != domain.StateInQuestion {
		log.Debug().Str("session", s.code).Uint64("epoch", epoch).Msg("stale deadline ignored")
		return
	}
	s.deadlineTimer = nil
	s.deadlineStop = nil

	log.Debug().Str("session", s.code).Int("question", s.currentIndex).Msg("question deadline reached")
	s.showResultsLocked()
}
