package attendance

import "errors"

// Attendance domain errors
var (
	// ErrNoActiveShift: no shift window covers the current time. User-facing,
	// not retryable until the clock or the catalog changes.
	ErrNoActiveShift = errors.New("no shift is active at the current time")

	// ErrAlreadyCompleted: an action was attempted after the final check-out.
	ErrAlreadyCompleted = errors.New("attendance for today is already completed")

	// ErrRecordNotFound: a lookup or the salary calculation referenced a
	// record that does not exist. For the calculation this is an ordering
	// bug in the caller; it is surfaced, never retried.
	ErrRecordNotFound = errors.New("attendance record not found")
)
