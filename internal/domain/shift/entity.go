package shift

import "time"

// Shift is a named daily schedule template with one or two sessions and an
// expected-hours target for full pay. Session times are times of day; the
// date component is ignored. A shift with HasBreak set always carries both
// second-session fields.
type Shift struct {
	ID            string
	Name          string
	Start1        time.Time
	End1          time.Time
	Start2        *time.Time
	End2          *time.Time
	ExpectedHours int
	HasBreak      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
