package domain

import (
	"errors"
	"testing"
	"time"
)

func TestLoadZone_UTCLiterals(t *testing.T) {
	cases := []struct {
		tz     string
		offset int // seconds east of UTC
	}{
		{"UTC", 0},
		{"UTC+0", 0},
		{"UTC+3", 3 * 3600},
		{"UTC-5", -5 * 3600},
		{"UTC+14", 14 * 3600},
	}
	for _, c := range cases {
		loc, err := LoadZone(c.tz)
		if err != nil {
			t.Fatalf("LoadZone(%q): %v", c.tz, err)
		}
		_, off := time.Now().In(loc).Zone()
		if off != c.offset {
			t.Fatalf("LoadZone(%q): offset %d, want %d", c.tz, off, c.offset)
		}
	}
}

func TestLoadZone_IANA(t *testing.T) {
	loc, err := LoadZone("Europe/Moscow")
	if err != nil {
		t.Fatalf("LoadZone: %v", err)
	}
	if loc.String() != "Europe/Moscow" {
		t.Fatalf("got %s", loc)
	}
}

func TestLoadZone_Invalid(t *testing.T) {
	for _, tz := range []string{"", "Mars/Phobos", "UTC+99", "UTCfoo"} {
		if _, err := LoadZone(tz); !errors.Is(err, ErrInvalidTimezone) {
			t.Fatalf("LoadZone(%q): want ErrInvalidTimezone, got %v", tz, err)
		}
	}
}

func TestUTCOffset(t *testing.T) {
	at := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	if got := utcOffsetAt("UTC+5", at); got != "UTC+5" {
		t.Fatalf("got %s", got)
	}
	// Moscow has no DST; fixed +3 year-round.
	if got := utcOffsetAt("Europe/Moscow", at); got != "UTC+3" {
		t.Fatalf("got %s", got)
	}
	if got := utcOffsetAt("America/New_York", at); got != "UTC-5" {
		t.Fatalf("got %s", got)
	}
	// Unresolvable zones pass through for display.
	if got := utcOffsetAt("Nowhere/Here", at); got != "Nowhere/Here" {
		t.Fatalf("got %s", got)
	}
}
