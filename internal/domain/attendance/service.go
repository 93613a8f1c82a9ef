package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the check-in/out flow.
type AttendanceService interface {
	// GetToday returns the employee's record for the current civil date with
	// its derived status and permitted next action. Status is resolved on
	// every call, never cached.
	GetToday(ctx context.Context, employeeID string) (TodayResponse, error)

	// GetStatus resolves the status for an arbitrary date.
	GetStatus(ctx context.Context, employeeID string, date time.Time) (Status, error)

	// PerformAction resolves the current status, performs the one write it
	// permits, and triggers the salary calculation when the write completes
	// the day. Fails with ErrAlreadyCompleted once the day is done and with
	// ErrNoActiveShift when a first check-in finds no open shift window.
	PerformAction(ctx context.Context, employeeID string, req ActionRequest) (RecordResponse, error)

	// GetMyAttendance retrieves date-range history for the employee.
	GetMyAttendance(ctx context.Context, employeeID string, filter HistoryFilter) (ListRecordsResponse, error)

	// ListAttendance retrieves records across employees (admin).
	ListAttendance(ctx context.Context, filter AdminFilter) (ListRecordsResponse, error)

	// UpdateRecord fixes wrong timestamps (admin) and recomputes the derived
	// fields when the record is complete.
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)

	// DeleteRecord is the administrative override (admin).
	DeleteRecord(ctx context.Context, id string) error
}
