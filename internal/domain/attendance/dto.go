package attendance

import (
	"mime/multipart"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

// ActionRequest carries the optional selfie captured for the timestamp event.
// The action itself is never named by the client; the service derives it from
// the current status.
type ActionRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	ShiftID      string  `json:"shift_id"`
	ShiftName    *string `json:"shift_name,omitempty"`

	CheckIn1  *string `json:"check_in_1,omitempty"`
	CheckOut1 *string `json:"check_out_1,omitempty"`
	CheckIn2  *string `json:"check_in_2,omitempty"`
	CheckOut2 *string `json:"check_out_2,omitempty"`

	SelfieCheckIn1  *string `json:"selfie_check_in_1,omitempty"`
	SelfieCheckOut1 *string `json:"selfie_check_out_1,omitempty"`
	SelfieCheckIn2  *string `json:"selfie_check_in_2,omitempty"`
	SelfieCheckOut2 *string `json:"selfie_check_out_2,omitempty"`

	WorkHours *float64 `json:"calculated_work_hours,omitempty"`
	Salary    *int64   `json:"calculated_salary,omitempty"`
}

// TodayResponse is the employee's live view: the record (nil before first
// check-in), its derived status, and the one action the status permits.
type TodayResponse struct {
	Record     *RecordResponse `json:"record"`
	Status     Status          `json:"status"`
	NextAction Action          `json:"next_action"`
}

type HistoryFilter struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 31
	}
	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdminFilter struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

func (f *AdminFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRecordRequest is the administrative override for fixing wrong
// timestamps. Updated records get their derived fields recomputed by the
// service when the record is complete.
type UpdateRecordRequest struct {
	ID        string  `json:"-"`
	CheckIn1  *string `json:"check_in_1,omitempty"`
	CheckOut1 *string `json:"check_out_1,omitempty"`
	CheckIn2  *string `json:"check_in_2,omitempty"`
	CheckOut2 *string `json:"check_out_2,omitempty"`
}

func (r UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "record ID is required"})
	}
	for field, value := range map[string]*string{
		"check_in_1":  r.CheckIn1,
		"check_out_1": r.CheckOut1,
		"check_in_2":  r.CheckIn2,
		"check_out_2": r.CheckOut2,
	} {
		if value == nil || *value == "" {
			continue
		}
		if _, ok := validator.IsValidDateTime(*value); !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be an RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// NewRecordResponse maps a Record entity to its API representation.
func NewRecordResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		ShiftID:      rec.ShiftID,
		ShiftName:    rec.ShiftName,

		CheckIn1:  timePtrToString(rec.CheckIn1),
		CheckOut1: timePtrToString(rec.CheckOut1),
		CheckIn2:  timePtrToString(rec.CheckIn2),
		CheckOut2: timePtrToString(rec.CheckOut2),

		SelfieCheckIn1:  rec.SelfieCheckIn1,
		SelfieCheckOut1: rec.SelfieCheckOut1,
		SelfieCheckIn2:  rec.SelfieCheckIn2,
		SelfieCheckOut2: rec.SelfieCheckOut2,
	}
	if rec.WorkHours != nil {
		v := rec.WorkHours.InexactFloat64()
		resp.WorkHours = &v
	}
	if rec.Salary != nil {
		v := rec.Salary.IntPart()
		resp.Salary = &v
	}
	return resp
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
