package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func TestCreateShiftRequest_Validate(t *testing.T) {
	valid := CreateShiftRequest{
		Name:          "Morning",
		Start1:        "09:00",
		End1:          "12:00",
		Start2:        strPtr("13:00"),
		End2:          strPtr("17:00"),
		ExpectedHours: 6,
		HasBreak:      true,
	}
	assert.NoError(t, valid.Validate())

	overnight := CreateShiftRequest{
		Name:          "Night",
		Start1:        "22:00",
		End1:          "04:00",
		ExpectedHours: 6,
	}
	assert.NoError(t, overnight.Validate(), "single session may span midnight")
}

func TestCreateShiftRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateShiftRequest
		field string
	}{
		{
			"missing name",
			CreateShiftRequest{Start1: "09:00", End1: "12:00", ExpectedHours: 6},
			"name",
		},
		{
			"bad start time",
			CreateShiftRequest{Name: "x", Start1: "9am", End1: "12:00", ExpectedHours: 6},
			"start_time_1",
		},
		{
			"break without second session",
			CreateShiftRequest{Name: "x", Start1: "09:00", End1: "12:00", ExpectedHours: 6, HasBreak: true},
			"has_break",
		},
		{
			"second session spanning midnight",
			CreateShiftRequest{Name: "x", Start1: "09:00", End1: "12:00", Start2: strPtr("22:00"), End2: strPtr("02:00"), ExpectedHours: 6, HasBreak: true},
			"end_time_2",
		},
		{
			"zero expected hours",
			CreateShiftRequest{Name: "x", Start1: "09:00", End1: "12:00"},
			"expected_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

func TestUpdateShiftRequest_Validate(t *testing.T) {
	assert.NoError(t, UpdateShiftRequest{ID: "shift-1", Start1: strPtr("08:00")}.Validate())

	err := UpdateShiftRequest{Start1: strPtr("08:00")}.Validate()
	require.Error(t, err)

	err = UpdateShiftRequest{ID: "shift-1", End1: strPtr("noon")}.Validate()
	require.Error(t, err)
}
