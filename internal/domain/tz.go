package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LoadZone resolves a timezone string. Two forms are accepted: a "UTC±N"
// literal (fixed offset, no daylight saving) and an IANA name such as
// "Europe/Moscow" (shifts across DST transitions).
func LoadZone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTimezone)
	}
	if off, ok := parseUTCLiteral(tz); ok {
		if off == 0 {
			return time.UTC, nil
		}
		return time.FixedZone(tz, off*3600), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// parseUTCLiteral parses "UTC", "UTC+3", "UTC-11" into whole hours.
func parseUTCLiteral(tz string) (int, bool) {
	if !strings.HasPrefix(tz, "UTC") {
		return 0, false
	}
	rest := tz[len("UTC"):]
	if rest == "" {
		return 0, true
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < -12 || n > 14 {
		return 0, false
	}
	return n, true
}

// ValidateZone trims and checks a timezone string, returning the canonical
// form stored on profiles and notification records.
func ValidateZone(tz string) (string, error) {
	tz = strings.TrimSpace(tz)
	if _, err := LoadZone(tz); err != nil {
		return "", err
	}
	return tz, nil
}

// UTCOffset returns the "UTC±N" display form of a zone at the current moment.
// Unresolvable zones are returned verbatim.
func UTCOffset(tz string) string {
	return utcOffsetAt(tz, time.Now())
}

func utcOffsetAt(tz string, at time.Time) string {
	loc, err := LoadZone(tz)
	if err != nil {
		return tz
	}
	_, off := at.In(loc).Zone()
	h := off / 3600
	if h >= 0 {
		return fmt.Sprintf("UTC+%d", h)
	}
	return fmt.Sprintf("UTC%d", h)
}
