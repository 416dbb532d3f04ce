package report

import (
	"strings"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE RANGE REPORT
// ========================================

type AttendanceReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate checks the date formats; range ordering is checked when the window is resolved
func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Rating buckets of a person's attendance rate
const (
	RatingExcellent = "excellent" // >= 90
	RatingGood      = "good"      // >= 75
	RatingAverage   = "average"   // >= 60
	RatingPoor      = "poor"
)

type AttendanceReport struct {
	ClassCode   string `json:"class_code"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TotalDays   int    `json:"total_days"`
	GeneratedAt string `json:"generated_at"`

	Summary ReportSummary  `json:"summary"`
	Persons []PersonReport `json:"persons"`

	DegradedDates []string `json:"degraded_dates,omitempty"`
}

type ReportSummary struct {
	TotalStudents int     `json:"total_students"`
	AverageRate   float64 `json:"average_rate"`
	TotalPresent  int     `json:"total_present"`
	TotalLate     int     `json:"total_late"`
}

type PersonReport struct {
	PersonID       string  `json:"person_id"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	LateDays       int     `json:"late_days"`
	AttendanceRate float64 `json:"attendance_rate"`
	Rating         string  `json:"rating"`
}
