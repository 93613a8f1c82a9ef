package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/domain/report"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// GetDashboardStats implements report.ReportRepository.
func (r *reportRepository) GetDashboardStats(ctx context.Context, date time.Time) (report.DashboardStats, error) {
	q := GetQuerier(ctx, r.db)

	var stats report.DashboardStats

	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE NOT is_admin`).Scan(&stats.TotalEmployees); err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE calculated_salary IS NOT NULL),
			COALESCE(SUM(calculated_work_hours), 0),
			COALESCE(SUM(calculated_salary), 0)
		FROM attendance_records
		WHERE date = $1
	`

	err := q.QueryRow(ctx, query, date).Scan(
		&stats.TodayAttendance,
		&stats.TodayCompleted,
		&stats.TotalHoursToday,
		&stats.TotalSalaryToday,
	)
	if err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to aggregate today's attendance: %w", err)
	}

	return stats, nil
}

// GetMonthlySummaries implements report.ReportRepository. Only completed
// records (derived fields set) contribute to hours and salary; days present
// counts every record with a first check-in.
func (r *reportRepository) GetMonthlySummaries(ctx context.Context, periodStart, periodEnd time.Time) ([]report.EmployeeMonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.name,
			COUNT(r.id),
			COALESCE(SUM(r.calculated_work_hours), 0),
			COALESCE(SUM(r.calculated_salary), 0)
		FROM employees e
		LEFT JOIN attendance_records r
			ON r.employee_id = e.id
			AND r.date >= $1 AND r.date <= $2
		WHERE NOT e.is_admin
		GROUP BY e.id, e.name
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []report.EmployeeMonthlySummary
	for rows.Next() {
		var s report.EmployeeMonthlySummary
		if err := rows.Scan(&s.EmployeeID, &s.EmployeeName, &s.DaysPresent, &s.TotalHours, &s.TotalSalary); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		if s.DaysPresent > 0 {
			s.AverageHours = s.TotalHours / float64(s.DaysPresent)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly summaries: %w", err)
	}

	return summaries, nil
}
