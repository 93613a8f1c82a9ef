package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirin/hadirin-backend-go/internal/config"
	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
)

func testCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(config.PayrollConfig{
		BaseSalary:    decimal.NewFromInt(80000),
		ExpectedHours: 6,
		Timezone:      "UTC",
	})
	require.NoError(t, err)
	return calc
}

func utc(h, m int) *time.Time {
	t := time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
	return &t
}

func TestCalculate_FullDayGetsBaseSalary(t *testing.T) {
	calc := testCalculator(t)

	hours, salary := calc.Calculate(attendance.Record{
		CheckIn1:  utc(9, 0),
		CheckOut1: utc(12, 0),
		CheckIn2:  utc(13, 0),
		CheckOut2: utc(16, 0),
	})

	assert.True(t, hours.Equal(decimal.NewFromInt(6)), "hours = %s", hours)
	assert.True(t, salary.Equal(decimal.NewFromInt(80000)), "salary = %s", salary)
}

func TestCalculate_OvertimeStillGetsBaseSalary(t *testing.T) {
	calc := testCalculator(t)

	hours, salary := calc.Calculate(attendance.Record{
		CheckIn1:  utc(8, 0),
		CheckOut1: utc(12, 0),
		CheckIn2:  utc(13, 0),
		CheckOut2: utc(18, 0),
	})

	assert.True(t, hours.Equal(decimal.NewFromInt(9)), "hours = %s", hours)
	assert.True(t, salary.Equal(decimal.NewFromInt(80000)), "salary = %s", salary)
}

func TestCalculate_PartialDayIsProportional(t *testing.T) {
	calc := testCalculator(t)

	// 3 of 6 expected hours
	hours, salary := calc.Calculate(attendance.Record{
		CheckIn1:  utc(9, 0),
		CheckOut1: utc(12, 0),
	})

	assert.True(t, hours.Equal(decimal.NewFromInt(3)), "hours = %s", hours)
	assert.True(t, salary.Equal(decimal.NewFromInt(40000)), "salary = %s", salary)
}

func TestCalculate_FractionalHoursRounded(t *testing.T) {
	calc := testCalculator(t)

	// 1h30m of 6 expected hours: 1.5/6 * 80000 = 20000
	hours, salary := calc.Calculate(attendance.Record{
		CheckIn1:  utc(9, 0),
		CheckOut1: utc(10, 30),
	})

	assert.True(t, hours.Equal(decimal.NewFromFloat(1.5)), "hours = %s", hours)
	assert.True(t, salary.Equal(decimal.NewFromInt(20000)), "salary = %s", salary)
}

func TestCalculate_ZeroHours(t *testing.T) {
	calc := testCalculator(t)

	hours, salary := calc.Calculate(attendance.Record{
		CheckIn1:  utc(9, 0),
		CheckOut1: utc(9, 0),
	})

	assert.True(t, hours.IsZero(), "hours = %s", hours)
	assert.True(t, salary.IsZero(), "salary = %s", salary)
}

// A session missing either endpoint contributes nothing instead of
// poisoning the total.
func TestCalculate_IncompleteSessionIgnored(t *testing.T) {
	calc := testCalculator(t)

	hours, salary := calc.Calculate(attendance.Record{
		CheckIn1:  utc(9, 0),
		CheckOut1: utc(12, 0),
		CheckIn2:  utc(13, 0),
	})

	assert.True(t, hours.Equal(decimal.NewFromInt(3)), "hours = %s", hours)
	assert.True(t, salary.Equal(decimal.NewFromInt(40000)), "salary = %s", salary)
}

// A checkout recorded before the check-in clamps the session to zero instead
// of charging negative hours against the other session.
func TestCalculate_NegativeSessionClamped(t *testing.T) {
	calc := testCalculator(t)

	hours, salary := calc.Calculate(attendance.Record{
		CheckIn1:  utc(12, 0),
		CheckOut1: utc(9, 0),
		CheckIn2:  utc(13, 0),
		CheckOut2: utc(16, 0),
	})

	assert.True(t, hours.Equal(decimal.NewFromInt(3)), "hours = %s", hours)
	assert.True(t, salary.Equal(decimal.NewFromInt(40000)), "salary = %s", salary)
}

func TestCalculate_SalaryMonotonicInHours(t *testing.T) {
	calc := testCalculator(t)

	var prev decimal.Decimal
	for minutes := 0; minutes <= 8*60; minutes += 30 {
		out := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
		_, salary := calc.Calculate(attendance.Record{
			CheckIn1:  utc(9, 0),
			CheckOut1: &out,
		})
		assert.True(t, salary.GreaterThanOrEqual(prev), "salary dropped at %d minutes", minutes)
		prev = salary
	}

	assert.True(t, prev.Equal(decimal.NewFromInt(80000)))
}
