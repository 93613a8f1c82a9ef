package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records.
// Records are unique per (employee, date); methods taking that pair use it as
// the key. Persistence failures surface as wrapped errors and are never
// retried here.
type AttendanceRepository interface {
	// CreateFirstCheckIn inserts the day's record with check-in 1 set. The
	// insert is atomic (insert-if-absent on the unique key): when another
	// writer got there first the stored record is returned with created set
	// to false and no mutation occurs.
	CreateFirstCheckIn(ctx context.Context, rec Record) (r Record, created bool, err error)

	// GetByEmployeeAndDate returns nil without error when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// Update writes one timestamp and its selfie reference as a single
	// logical update. Fails with ErrRecordNotFound if the row is gone.
	Update(ctx context.Context, rec Record) error

	// UpdateDerived sets the two derived fields once, at completion.
	UpdateDerived(ctx context.Context, employeeID string, date time.Time, workHours, salary decimal.Decimal) error

	ListByEmployee(ctx context.Context, employeeID string, filter HistoryFilter) ([]Record, int64, error)

	List(ctx context.Context, filter AdminFilter) ([]Record, int64, error)

	// Delete is the administrative override; core logic never deletes.
	Delete(ctx context.Context, id string) error
}
