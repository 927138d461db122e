package domain

import "github.com/google/uuid"

// MaxNotificationsPerUser caps active notifications for a single user.
const MaxNotificationsPerUser = 10

// Notification is one recurring daily weather delivery.
//
// Region is a copy of the owner's home region taken when the record is created.
// The dispatcher reads this copy at fire time, never the live profile; the
// profile layer pushes region changes into every record to keep the copies in
// sync.
type Notification struct {
	ID       string // opaque 8-char token, stable for the record's lifetime
	Hour     int    // 0..23
	Minute   int    // 0..59
	Timezone string // IANA name or "UTC±N" literal
	Region   string
}

// SameSlot reports whether the record occupies the (hour, minute, timezone)
// dedup slot.
func (n Notification) SameSlot(hour, minute int, tz string) bool {
	return n.Hour == hour && n.Minute == minute && n.Timezone == tz
}

// NewNotificationID returns a fresh 8-char notification id.
func NewNotificationID() string {
	return uuid.NewString()[:8]
}
