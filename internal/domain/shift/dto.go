package shift

import (
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name          string  `json:"name"`
	Start1        string  `json:"start_time_1"`
	End1          string  `json:"end_time_1"`
	Start2        *string `json:"start_time_2,omitempty"`
	End2          *string `json:"end_time_2,omitempty"`
	ExpectedHours int     `json:"expected_hours"`
	HasBreak      bool    `json:"has_break"`
}

func (r CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.Start1); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time_1", Message: "must be a valid time of day (HH:MM or HH:MM:SS)"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.End1); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time_1", Message: "must be a valid time of day (HH:MM or HH:MM:SS)"})
	}
	if r.ExpectedHours <= 0 || r.ExpectedHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "expected_hours", Message: "must be between 1 and 24"})
	}

	// a break shift always defines its second session
	if r.HasBreak {
		if r.Start2 == nil || r.End2 == nil {
			errs = append(errs, validator.ValidationError{Field: "has_break", Message: "second session times are required when has_break is true"})
		}
	}
	if r.Start2 != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.Start2); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_time_2", Message: "must be a valid time of day (HH:MM or HH:MM:SS)"})
		}
	}
	if r.End2 != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.End2); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time_2", Message: "must be a valid time of day (HH:MM or HH:MM:SS)"})
		}
	}

	// session 2 never spans midnight; session 1 may (overnight shifts)
	if r.Start2 != nil && r.End2 != nil {
		start2, ok1 := validator.IsValidTimeOfDay(*r.Start2)
		end2, ok2 := validator.IsValidTimeOfDay(*r.End2)
		if ok1 && ok2 && !start2.Before(end2) {
			errs = append(errs, validator.ValidationError{Field: "end_time_2", Message: "second session end must be after its start"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	Start1        *string `json:"start_time_1,omitempty"`
	End1          *string `json:"end_time_1,omitempty"`
	Start2        *string `json:"start_time_2,omitempty"`
	End2          *string `json:"end_time_2,omitempty"`
	ExpectedHours *int    `json:"expected_hours,omitempty"`
	HasBreak      *bool   `json:"has_break,omitempty"`
}

func (r UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "shift ID is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	for field, value := range map[string]*string{
		"start_time_1": r.Start1,
		"end_time_1":   r.End1,
		"start_time_2": r.Start2,
		"end_time_2":   r.End2,
	} {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidTimeOfDay(*value); !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a valid time of day (HH:MM or HH:MM:SS)"})
		}
	}
	if r.ExpectedHours != nil && (*r.ExpectedHours <= 0 || *r.ExpectedHours > 24) {
		errs = append(errs, validator.ValidationError{Field: "expected_hours", Message: "must be between 1 and 24"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Start1        string  `json:"start_time_1"`
	End1          string  `json:"end_time_1"`
	Start2        *string `json:"start_time_2,omitempty"`
	End2          *string `json:"end_time_2,omitempty"`
	ExpectedHours int     `json:"expected_hours"`
	HasBreak      bool    `json:"has_break"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// NewShiftResponse maps a Shift entity to its API representation.
func NewShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:            s.ID,
		Name:          s.Name,
		Start1:        s.Start1.Format("15:04:05"),
		End1:          s.End1.Format("15:04:05"),
		ExpectedHours: s.ExpectedHours,
		HasBreak:      s.HasBreak,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Start2 != nil {
		v := s.Start2.Format("15:04:05")
		resp.Start2 = &v
	}
	if s.End2 != nil {
		v := s.End2.Format("15:04:05")
		resp.End2 = &v
	}
	return resp
}
