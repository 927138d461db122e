package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// Key identifies one recurring timer: a notification of a user.
type Key struct {
	UserID         int64
	NotificationID string
}

// Job runs in its own goroutine each time a timer fires.
type Job func(key Key)

// Scheduler owns at most one recurring daily timer per key. Each timer fires
// at hour:minute evaluated in the zone it was armed with, independent of the
// host timezone.
type Scheduler struct {
	clock Clock
	log   *zap.Logger

	mu      sync.Mutex
	timers  map[Key]chan struct{}
	stopped bool
}

// New creates a scheduler driven by the system clock.
func New(log *zap.Logger) *Scheduler {
	return NewWithClock(systemClock{}, log)
}

// NewWithClock creates a scheduler driven by the given clock.
func NewWithClock(clock Clock, log *zap.Logger) *Scheduler {
	return &Scheduler{
		clock:  clock,
		log:    log,
		timers: make(map[Key]chan struct{}),
	}
}

// Schedule arms a daily timer for key at hour:minute in zone tz. Any existing
// timer for the key is cancelled first, so a key can never hold two active
// timers. Fails with domain.ErrInvalidTimezone if tz does not resolve; nothing
// is registered in that case.
func (s *Scheduler) Schedule(key Key, hour, minute int, tz string, job Job) error {
	loc, err := domain.LoadZone(tz)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return domain.ErrSchedulerUnavailable
	}
	if cancel, ok := s.timers[key]; ok {
		close(cancel)
	}
	cancel := make(chan struct{})
	s.timers[key] = cancel
	go s.run(key, cancel, hour, minute, loc, job)

	s.log.Debug("timer armed",
		zap.Int64("user_id", key.UserID),
		zap.String("notification_id", key.NotificationID),
		zap.String("at", domain.FormatClock(hour, minute)),
		zap.String("tz", tz),
	)
	return nil
}

func (s *Scheduler) run(key Key, cancel <-chan struct{}, hour, minute int, loc *time.Location, job Job) {
	for {
		now := s.clock.Now()
		next := NextDaily(now, hour, minute, loc)
		select {
		case <-cancel:
			return
		case <-s.clock.After(next.Sub(now)):
			job(key)
		}
	}
}

// Cancel disarms the timer for key. Unknown keys are a no-op, not an error.
func (s *Scheduler) Cancel(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.timers[key]; ok {
		close(cancel)
		delete(s.timers, key)
	}
}

// CancelAllFor disarms every timer belonging to userID.
func (s *Scheduler) CancelAllFor(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, cancel := range s.timers {
		if key.UserID == userID {
			close(cancel)
			delete(s.timers, key)
		}
	}
}

// Active reports whether key currently holds an armed timer.
func (s *Scheduler) Active(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

// Count returns the number of armed timers.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// CountFor returns the number of armed timers owned by userID.
func (s *Scheduler) CountFor(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.timers {
		if key.UserID == userID {
			n++
		}
	}
	return n
}

// Stop disarms every timer. Further Schedule calls fail with
// domain.ErrSchedulerUnavailable.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, cancel := range s.timers {
		close(cancel)
		delete(s.timers, key)
	}
	s.log.Info("scheduler stopped")
}
