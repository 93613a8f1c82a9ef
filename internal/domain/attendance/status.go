package attendance

import "github.com/hadirin/hadirin-backend-go/internal/domain/shift"

// Status is the derived attendance state for one employee on one date.
// It is a pure function of which timestamps are populated plus the shift's
// break flag, and is never stored.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusCheckedIn1 Status = "checked_in_1"
	StatusOnBreak    Status = "on_break"
	StatusCheckedIn2 Status = "checked_in_2"
	StatusCompleted  Status = "completed"
)

// Action is the single write a record in a given status permits next.
type Action string

const (
	ActionNone           Action = "none"
	ActionWriteCheckIn1  Action = "write_check_in_1"
	ActionWriteCheckOut1 Action = "write_check_out_1"
	ActionWriteCheckIn2  Action = "write_check_in_2"
	ActionWriteCheckOut2 Action = "write_check_out_2"
)

// ResolveStatus derives the current status from a record's populated
// timestamps and the shift's break flag. Rules are evaluated in order; the
// final rule covers both the single-session completion (no break, check-out 1
// set) and the two-session completion (check-out 2 set).
func ResolveStatus(rec Record, s shift.Shift) Status {
	switch {
	case rec.CheckIn1 == nil:
		return StatusNotStarted
	case rec.CheckOut1 == nil:
		return StatusCheckedIn1
	case rec.CheckIn2 == nil && s.HasBreak:
		return StatusOnBreak
	case rec.CheckIn2 != nil && rec.CheckOut2 == nil:
		return StatusCheckedIn2
	default:
		return StatusCompleted
	}
}

// NextAction maps a status to the one timestamp write it permits.
// StatusCompleted permits nothing; the caller must reject the request.
func NextAction(status Status) Action {
	switch status {
	case StatusNotStarted:
		return ActionWriteCheckIn1
	case StatusCheckedIn1:
		return ActionWriteCheckOut1
	case StatusOnBreak:
		return ActionWriteCheckIn2
	case StatusCheckedIn2:
		return ActionWriteCheckOut2
	default:
		return ActionNone
	}
}

// Completes reports whether performing action finishes the day for the given
// shift: the final check-out of a break shift, or the first check-out of a
// shift without one. Completion is what triggers the salary calculation.
func Completes(action Action, s shift.Shift) bool {
	if action == ActionWriteCheckOut2 {
		return true
	}
	return action == ActionWriteCheckOut1 && !s.HasBreak
}
