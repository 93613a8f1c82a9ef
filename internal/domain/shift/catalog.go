package shift

import "time"

// ActiveShift returns the first shift in catalog order whose session window
// covers now, or nil when no window matches. The caller must pass now already
// converted to the company's civil timezone; only the time of day is used.
// Catalog order acts as the priority order when windows overlap.
func ActiveShift(now time.Time, shifts []Shift) *Shift {
	minute := now.Hour()*60 + now.Minute()
	for i := range shifts {
		if shifts[i].Covers(minute) {
			return &shifts[i]
		}
	}
	return nil
}

// Covers reports whether the given minute of day falls inside one of the
// shift's session windows. A single-session shift whose start is later than
// its end spans midnight and matches minute >= start OR minute <= end.
func (s *Shift) Covers(minute int) bool {
	start1 := minuteOfDay(s.Start1)
	end1 := minuteOfDay(s.End1)

	if s.Start2 != nil && s.End2 != nil {
		if within(minute, start1, end1) {
			return true
		}
		return within(minute, minuteOfDay(*s.Start2), minuteOfDay(*s.End2))
	}

	if start1 > end1 {
		// overnight session
		return minute >= start1 || minute <= end1
	}
	return within(minute, start1, end1)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func within(minute, start, end int) bool {
	return minute >= start && minute <= end
}
