package report

import "context"

// ReportService defines reporting business logic (admin).
type ReportService interface {
	GetDashboardStats(ctx context.Context) (DashboardStats, error)
	GenerateMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
}
