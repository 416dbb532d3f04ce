package analytics

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
)

// Alert thresholds; each rule fires only strictly past its threshold
const (
	LowAttendanceRateThreshold = 70.0
	LateArrivalsThreshold      = 10
	AbsenteesThreshold         = 20
)

// EvaluateAlerts applies the threshold rules to today's figures. Rules are independent
// and always reported in the same order: rate, late arrivals, absentees.
func EvaluateAlerts(absentToday, lateToday int, attendanceRatePercent float64) []dashboard.Alert {
	alerts := make([]dashboard.Alert, 0, 3)
	if attendanceRatePercent < LowAttendanceRateThreshold {
		alerts = append(alerts, dashboard.Alert{
			Severity: dashboard.SeverityDanger,
			Message:  fmt.Sprintf("Low attendance rate: %.1f%%", attendanceRatePercent),
		})
	}
	if lateToday > LateArrivalsThreshold {
		alerts = append(alerts, dashboard.Alert{
			Severity: dashboard.SeverityWarning,
			Message:  fmt.Sprintf("%d late arrivals today", lateToday),
		})
	}
	if absentToday > AbsenteesThreshold {
		alerts = append(alerts, dashboard.Alert{
			Severity: dashboard.SeverityInfo,
			Message:  fmt.Sprintf("%d students absent today", absentToday),
		})
	}
	return alerts
}
