package report

import (
	"context"
	"time"
)

// ReportRepository aggregates attendance data for reporting.
type ReportRepository interface {
	GetDashboardStats(ctx context.Context, date time.Time) (DashboardStats, error)
	GetMonthlySummaries(ctx context.Context, periodStart, periodEnd time.Time) ([]EmployeeMonthlySummary, error)
}
