package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(h, m int) time.Time {
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
}

func todPtr(h, m int) *time.Time {
	t := tod(h, m)
	return &t
}

func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func TestActiveShift_TwoSessionWindows(t *testing.T) {
	morning := Shift{
		ID:       "morning",
		Start1:   tod(8, 0),
		End1:     tod(12, 0),
		Start2:   todPtr(13, 0),
		End2:     todPtr(17, 0),
		HasBreak: true,
	}
	catalog := []Shift{morning}

	tests := []struct {
		name  string
		now   time.Time
		match bool
	}{
		{"inside first session", at(9, 30), true},
		{"first session start boundary", at(8, 0), true},
		{"first session end boundary", at(12, 0), true},
		{"during break gap", at(12, 30), false},
		{"inside second session", at(14, 0), true},
		{"second session end boundary", at(17, 0), true},
		{"after hours", at(20, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveShift(tt.now, catalog)
			if tt.match {
				require.NotNil(t, got)
				assert.Equal(t, "morning", got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestActiveShift_OvernightWindow(t *testing.T) {
	night := Shift{
		ID:     "night",
		Start1: tod(22, 0),
		End1:   tod(4, 0),
	}
	catalog := []Shift{night}

	assert.NotNil(t, ActiveShift(at(23, 30), catalog))
	assert.NotNil(t, ActiveShift(at(22, 0), catalog))
	assert.NotNil(t, ActiveShift(at(2, 0), catalog))
	assert.NotNil(t, ActiveShift(at(4, 0), catalog))
	assert.Nil(t, ActiveShift(at(12, 0), catalog))
	assert.Nil(t, ActiveShift(at(21, 59), catalog))
}

// Overnight matching applies to single-session shifts only; a two-session
// shift with a late second window never wraps around midnight.
func TestActiveShift_TwoSessionNeverWraps(t *testing.T) {
	sh := Shift{
		ID:       "late",
		Start1:   tod(18, 0),
		End1:     tod(20, 0),
		Start2:   todPtr(21, 0),
		End2:     todPtr(23, 0),
		HasBreak: true,
	}
	catalog := []Shift{sh}

	assert.NotNil(t, ActiveShift(at(22, 0), catalog))
	assert.Nil(t, ActiveShift(at(0, 30), catalog))
}

func TestActiveShift_CatalogOrderBreaksOverlap(t *testing.T) {
	first := Shift{ID: "first", Start1: tod(8, 0), End1: tod(16, 0)}
	second := Shift{ID: "second", Start1: tod(12, 0), End1: tod(20, 0)}
	catalog := []Shift{first, second}

	got := ActiveShift(at(14, 0), catalog)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)

	// outside the first window the second still matches
	got = ActiveShift(at(18, 0), catalog)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.ID)
}

func TestActiveShift_EmptyCatalog(t *testing.T) {
	assert.Nil(t, ActiveShift(at(10, 0), nil))
}
