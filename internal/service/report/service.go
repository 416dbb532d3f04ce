package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/service/analytics"
	attendancesvc "github.com/cmlabs-hris/attendance-dashboard-go/internal/service/attendance"
)

type ReportServiceImpl struct {
	roster  roster.Provider
	fetcher *attendancesvc.Fetcher
	now     func() time.Time
}

func NewReportService(rosterProvider roster.Provider, fetcher *attendancesvc.Fetcher) report.ReportService {
	return &ReportServiceImpl{
		roster:  rosterProvider,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// GenerateAttendanceReport summarizes every roster person of the caller's class over
// [StartDate, EndDate]. Dates whose fetch failed count as days with no attendance.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	classCode, err := jwt.ClassCodeFromContext(ctx)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	window, err := analytics.ExplicitWindow(req.StartDate, req.EndDate)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	people, err := s.roster.GetAll(ctx, classCode)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("load roster for %s: %w", classCode, err)
	}

	days, err := s.fetcher.FetchWindow(ctx, classCode, window)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("fetch attendance for %s: %w", classCode, err)
	}

	persons, summary := analytics.SummarizePersons(people, days)

	result := report.AttendanceReport{
		ClassCode:   classCode,
		StartDate:   window.First(),
		EndDate:     window.Last(),
		TotalDays:   window.Len(),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Summary:     summary,
		Persons:     persons,
	}
	for _, d := range days {
		if d.FetchFailed {
			result.DegradedDates = append(result.DegradedDates, d.Date)
		}
	}
	return result, nil
}
