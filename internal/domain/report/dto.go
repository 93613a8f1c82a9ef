package report

import "github.com/hadirin/hadirin-backend-go/internal/pkg/validator"

// DashboardStats is the admin dashboard snapshot for the current civil date.
type DashboardStats struct {
	TotalEmployees   int64   `json:"total_employees"`
	TodayAttendance  int64   `json:"today_attendance"`
	TodayCompleted   int64   `json:"today_completed"`
	TotalHoursToday  float64 `json:"total_hours_today"`
	TotalSalaryToday int64   `json:"total_salary_today"`
}

type MonthlyReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a four-digit year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeMonthlySummary aggregates one employee's completed records for the
// period. Only records with derived fields contribute to hours and salary.
type EmployeeMonthlySummary struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	DaysPresent  int64   `json:"days_present"`
	TotalHours   float64 `json:"total_hours"`
	TotalSalary  int64   `json:"total_salary"`
	AverageHours float64 `json:"average_hours"`
}

type MonthlyReport struct {
	PeriodMonth int                      `json:"period_month"`
	PeriodYear  int                      `json:"period_year"`
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	GeneratedAt string                   `json:"generated_at"`
	Employees   []EmployeeMonthlySummary `json:"employees"`
}
