package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one attendance row per (employee, calendar date). Up to four
// timestamps are written over the day in chronological-intent order:
// CheckIn1 <= CheckOut1 <= CheckIn2 <= CheckOut2. WorkHours and Salary are
// derived exactly once, at completion, and stay nil until then. Selfie URLs
// are opaque payload references and play no part in any calculation.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ShiftID    string

	CheckIn1  *time.Time
	CheckOut1 *time.Time
	CheckIn2  *time.Time
	CheckOut2 *time.Time

	SelfieCheckIn1  *string
	SelfieCheckOut1 *string
	SelfieCheckIn2  *string
	SelfieCheckOut2 *string

	WorkHours *decimal.Decimal
	Salary    *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	ShiftName    *string
}
