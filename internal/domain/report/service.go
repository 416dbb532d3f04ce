package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateAttendanceReport summarizes every roster person over an explicit date range
	GenerateAttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
}
