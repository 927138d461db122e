package domain

import "errors"

// Errors surfaced to interactive callers. Background firing paths log instead
// of propagating.
var (
	ErrLimitExceeded        = errors.New("notification limit exceeded")
	ErrAlreadyExists        = errors.New("notification already exists")
	ErrSchedulerUnavailable = errors.New("scheduler unavailable")
	ErrInvalidTimezone      = errors.New("invalid timezone")
	ErrNotFound             = errors.New("notification not found")
)
