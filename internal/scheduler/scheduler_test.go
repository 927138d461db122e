package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// fakeClock is a manually advanced clock. After registers a waiter that fires
// when Advance moves the clock past its deadline.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	at time.Time
	ch chan time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := &fakeWaiter{at: c.now.Add(d), ch: make(chan time.Time, 1)}
	if !w.at.After(c.now) {
		w.ch <- c.now
	} else {
		c.waiters = append(c.waiters, w)
	}
	return w.ch
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	rest := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.at.After(c.now) {
			w.ch <- c.now
		} else {
			rest = append(rest, w)
		}
	}
	c.waiters = rest
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

// waitPending blocks until at least n timer goroutines are parked on the clock.
func waitPending(t *testing.T, c *fakeClock, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for c.pending() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d pending timers (have %d)", n, c.pending())
		}
		time.Sleep(time.Millisecond)
	}
}

type fireLog struct {
	mu    sync.Mutex
	fired []Key
}

func (f *fireLog) job(key Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fired = append(f.fired, key)
}

func (f *fireLog) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fired)
}

func TestSchedule_FiresAtLocalSlot(t *testing.T) {
	// 08:30 Moscow time: the 09:00 slot is 30 minutes away.
	clock := newFakeClock(mustLocalUTC(t, "Europe/Moscow", 2025, time.May, 6, 8, 30))
	s := NewWithClock(clock, zap.NewNop())
	defer s.Stop()

	var fl fireLog
	key := Key{UserID: 1, NotificationID: "abc"}
	if err := s.Schedule(key, 9, 0, "Europe/Moscow", fl.job); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	waitPending(t, clock, 1)

	clock.Advance(29 * time.Minute)
	time.Sleep(10 * time.Millisecond)
	if fl.count() != 0 {
		t.Fatal("fired too early")
	}

	clock.Advance(time.Minute)
	waitForCount(t, &fl, 1)

	// After firing the timer re-arms for tomorrow.
	waitPending(t, clock, 1)
	clock.Advance(24 * time.Hour)
	waitForCount(t, &fl, 2)
}

func TestSchedule_PastSlotWaitsForTomorrow(t *testing.T) {
	// 09:30 local: today's 09:00 already passed.
	clock := newFakeClock(mustLocalUTC(t, "Europe/Moscow", 2025, time.May, 6, 9, 30))
	s := NewWithClock(clock, zap.NewNop())
	defer s.Stop()

	var fl fireLog
	key := Key{UserID: 1, NotificationID: "abc"}
	if err := s.Schedule(key, 9, 0, "Europe/Moscow", fl.job); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	waitPending(t, clock, 1)

	clock.Advance(23 * time.Hour)
	time.Sleep(10 * time.Millisecond)
	if fl.count() != 0 {
		t.Fatal("fired before tomorrow's slot")
	}
	clock.Advance(30 * time.Minute)
	waitForCount(t, &fl, 1)
}

func TestSchedule_ReplacesExistingTimer(t *testing.T) {
	clock := newFakeClock(mustLocalUTC(t, "UTC+3", 2025, time.May, 6, 8, 0))
	s := NewWithClock(clock, zap.NewNop())
	defer s.Stop()

	var old, repl fireLog
	key := Key{UserID: 1, NotificationID: "abc"}
	if err := s.Schedule(key, 9, 0, "UTC+3", old.job); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	waitPending(t, clock, 1)
	if err := s.Schedule(key, 10, 0, "UTC+3", repl.job); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if got := s.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	waitPending(t, clock, 2) // replacement parked; the old waiter is orphaned
	time.Sleep(10 * time.Millisecond)

	clock.Advance(90 * time.Minute) // past 09:00, before 10:00
	time.Sleep(10 * time.Millisecond)
	if old.count() != 0 {
		t.Fatal("cancelled timer fired")
	}
	if repl.count() != 0 {
		t.Fatal("replacement fired early")
	}

	clock.Advance(30 * time.Minute)
	waitForCount(t, &repl, 1)
}

func TestCancel_StopsFutureFirings(t *testing.T) {
	clock := newFakeClock(mustLocalUTC(t, "UTC", 2025, time.May, 6, 8, 0))
	s := NewWithClock(clock, zap.NewNop())
	defer s.Stop()

	var fl fireLog
	key := Key{UserID: 1, NotificationID: "abc"}
	if err := s.Schedule(key, 9, 0, "UTC", fl.job); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	waitPending(t, clock, 1)

	s.Cancel(key)
	if s.Active(key) {
		t.Fatal("timer still active after cancel")
	}
	time.Sleep(10 * time.Millisecond)

	clock.Advance(48 * time.Hour)
	time.Sleep(10 * time.Millisecond)
	if fl.count() != 0 {
		t.Fatal("fired after cancel")
	}

	// Cancelling an unknown key is a no-op.
	s.Cancel(Key{UserID: 99, NotificationID: "zzz"})
}

func TestCancelAllFor_OnlyTargetsOneUser(t *testing.T) {
	clock := newFakeClock(mustLocalUTC(t, "UTC", 2025, time.May, 6, 8, 0))
	s := NewWithClock(clock, zap.NewNop())
	defer s.Stop()

	var fl fireLog
	_ = s.Schedule(Key{UserID: 1, NotificationID: "a"}, 9, 0, "UTC", fl.job)
	_ = s.Schedule(Key{UserID: 1, NotificationID: "b"}, 10, 0, "UTC", fl.job)
	_ = s.Schedule(Key{UserID: 2, NotificationID: "c"}, 9, 0, "UTC", fl.job)
	waitPending(t, clock, 3)

	s.CancelAllFor(1)
	if got := s.CountFor(1); got != 0 {
		t.Fatalf("user 1 timers = %d, want 0", got)
	}
	if got := s.CountFor(2); got != 1 {
		t.Fatalf("user 2 timers = %d, want 1", got)
	}
}

func TestSchedule_InvalidTimezone(t *testing.T) {
	s := NewWithClock(newFakeClock(time.Now()), zap.NewNop())
	defer s.Stop()

	err := s.Schedule(Key{UserID: 1, NotificationID: "a"}, 9, 0, "Mars/Olympus", func(Key) {})
	if !errors.Is(err, domain.ErrInvalidTimezone) {
		t.Fatalf("want ErrInvalidTimezone, got %v", err)
	}
	if got := s.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
}

func TestSchedule_AfterStopFails(t *testing.T) {
	s := NewWithClock(newFakeClock(time.Now()), zap.NewNop())
	s.Stop()
	err := s.Schedule(Key{UserID: 1, NotificationID: "a"}, 9, 0, "UTC", func(Key) {})
	if !errors.Is(err, domain.ErrSchedulerUnavailable) {
		t.Fatalf("want ErrSchedulerUnavailable, got %v", err)
	}
}

func waitForCount(t *testing.T, fl *fireLog, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for fl.count() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d firings (have %d)", n, fl.count())
		}
		time.Sleep(time.Millisecond)
	}
}
