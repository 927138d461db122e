package scheduler

import "time"

// NextDaily returns the next occurrence of hour:minute in loc strictly after
// now. If the slot has already passed today in that zone, the result is
// tomorrow's slot. The wall-clock time is re-derived in loc for each day, so
// repeats follow daylight-saving transitions instead of drifting by a fixed
// UTC offset.
func NextDaily(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}
