package attendance

import (
	"fmt"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/config"
	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Calculator turns a day's timestamp pairs into worked hours and a salary
// figure. Pay is the flat base salary once worked hours reach the expected
// target, and strictly proportional below it. Both endpoints of a session are
// normalized to the same civil timezone before subtraction; a pure duration
// is unaffected by the offset, the normalization guards against mixed-zone
// representations reaching the calculator.
type Calculator struct {
	baseSalary    decimal.Decimal
	expectedHours decimal.Decimal
	location      *time.Location
}

func NewCalculator(cfg config.PayrollConfig) (*Calculator, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid payroll timezone %q: %w", cfg.Timezone, err)
	}
	return &Calculator{
		baseSalary:    cfg.BaseSalary,
		expectedHours: decimal.NewFromInt(int64(cfg.ExpectedHours)),
		location:      loc,
	}, nil
}

// Calculate returns worked hours rounded to two decimals and the salary
// rounded to the nearest whole currency unit. Sessions missing either
// endpoint contribute zero.
func (c *Calculator) Calculate(rec attendance.Record) (workHours, salary decimal.Decimal) {
	total := c.sessionHours(rec.CheckIn1, rec.CheckOut1).
		Add(c.sessionHours(rec.CheckIn2, rec.CheckOut2))
	if total.IsNegative() {
		total = decimal.Zero
	}

	if total.GreaterThanOrEqual(c.expectedHours) {
		salary = c.baseSalary
	} else {
		salary = c.baseSalary.Mul(total).Div(c.expectedHours)
	}

	return total.Round(2), salary.Round(0)
}

// Location is the civil timezone the calculator (and the day keying around
// it) operates in.
func (c *Calculator) Location() *time.Location {
	return c.location
}

func (c *Calculator) sessionHours(in, out *time.Time) decimal.Decimal {
	if in == nil || out == nil {
		return decimal.Zero
	}

	elapsed := out.In(c.location).Sub(in.In(c.location))
	if elapsed < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(elapsed.Hours())
}
