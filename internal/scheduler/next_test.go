package scheduler

import (
	"testing"
	"time"

	"github.com/aadvantures228-boop/Weather-Main/internal/domain"
)

// helper: build a time in the given tz and return its UTC instant
func mustLocalUTC(t *testing.T, tz string, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := domain.LoadZone(tz)
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return time.Date(y, m, d, hh, mm, 0, 0, loc).UTC()
}

func TestNextDaily_BeforeSlotFiresToday(t *testing.T) {
	loc, _ := domain.LoadZone("Europe/Moscow")
	// 08:30 local, slot 09:00 → today 09:00
	now := mustLocalUTC(t, "Europe/Moscow", 2025, time.May, 6, 8, 30)
	next := NextDaily(now, 9, 0, loc)
	if got := next.In(loc).Format("2006-01-02 15:04"); got != "2025-05-06 09:00" {
		t.Fatalf("got %s", got)
	}
}

func TestNextDaily_AfterSlotFiresTomorrow(t *testing.T) {
	loc, _ := domain.LoadZone("Europe/Moscow")
	// 09:30 local, slot 09:00 → tomorrow 09:00
	now := mustLocalUTC(t, "Europe/Moscow", 2025, time.May, 6, 9, 30)
	next := NextDaily(now, 9, 0, loc)
	if got := next.In(loc).Format("2006-01-02 15:04"); got != "2025-05-07 09:00" {
		t.Fatalf("got %s", got)
	}
}

func TestNextDaily_ExactSlotFiresTomorrow(t *testing.T) {
	loc, _ := domain.LoadZone("UTC+3")
	now := mustLocalUTC(t, "UTC+3", 2025, time.May, 6, 9, 0)
	next := NextDaily(now, 9, 0, loc)
	if got := next.Sub(now); got != 24*time.Hour {
		t.Fatalf("got %s", got)
	}
}

func TestNextDaily_FollowsDSTTransition(t *testing.T) {
	loc, err := domain.LoadZone("America/New_York")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	// 2024-03-10 the US springs forward: the night is one hour short, so the
	// gap to the next 09:00 wall-clock slot is 22h30m, not 23h30m.
	now := mustLocalUTC(t, "America/New_York", 2024, time.March, 9, 9, 30)
	next := NextDaily(now, 9, 0, loc)
	if got := next.In(loc).Format("2006-01-02 15:04"); got != "2024-03-10 09:00" {
		t.Fatalf("got %s", got)
	}
	if got := next.Sub(now); got != 22*time.Hour+30*time.Minute {
		t.Fatalf("UTC gap %s, want 22h30m", got)
	}
}

func TestNextDaily_FixedOffsetDoesNotShift(t *testing.T) {
	loc, _ := domain.LoadZone("UTC-5")
	now := mustLocalUTC(t, "UTC-5", 2024, time.March, 9, 9, 30)
	next := NextDaily(now, 9, 0, loc)
	// Fixed offsets are DST-blind: always a plain 23h30m away.
	if got := next.Sub(now); got != 23*time.Hour+30*time.Minute {
		t.Fatalf("UTC gap %s, want 23h30m", got)
	}
}
