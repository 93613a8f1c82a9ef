package report

import (
	"context"
	"fmt"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	report.ReportRepository
	location *time.Location

	now func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, location *time.Location) *ReportServiceImpl {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		location:         location,
		now:              time.Now,
	}
}

// GetDashboardStats implements report.ReportService.
func (s *ReportServiceImpl) GetDashboardStats(ctx context.Context) (report.DashboardStats, error) {
	nowLocal := s.now().In(s.location)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	stats, err := s.ReportRepository.GetDashboardStats(ctx, today)
	if err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
	}
	return stats, nil
}

// GenerateMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	summaries, err := s.ReportRepository.GetMonthlySummaries(ctx, periodStart, periodEnd)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to aggregate monthly summaries: %w", err)
	}

	return report.MonthlyReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.Format("2006-01-02"),
		GeneratedAt: s.now().In(s.location).Format(time.RFC3339),
		Employees:   summaries,
	}, nil
}
