package dashboard

import (
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
)

// ========== SNAPSHOT ==========

// Snapshot is the complete set of dashboard metrics for one refresh cycle.
// A snapshot is never modified after it is published; the next cycle replaces it.
type Snapshot struct {
	ID          string    `json:"id"`
	ClassCode   string    `json:"class_code"`
	Date        string    `json:"date"` // Format: "YYYY-MM-DD"
	GeneratedAt time.Time `json:"generated_at"`

	TotalUsers       int `json:"total_users"`
	TotalDepartments int `json:"total_departments"`
	TodayAttendance  int `json:"today_attendance"`
	TodayAbsent      int `json:"today_absent"`
	WeeklyAttendance int `json:"weekly_attendance"`

	MonthlyAttendance  int  `json:"monthly_attendance"`
	MonthlyApproximate bool `json:"monthly_approximate"`

	AttendanceRatePercent  float64 `json:"attendance_rate_percent"`
	LateArrivals           int     `json:"late_arrivals"`
	OnTimeArrivals         int     `json:"on_time_arrivals"`
	AvgAttendanceTime      string  `json:"avg_attendance_time"` // Format: "HH:MM"
	ConsecutivePresentDays int     `json:"consecutive_present_days"`
	PerfectAttendeeCount   int     `json:"perfect_attendee_count"`

	DepartmentBreakdown []DepartmentBucket  `json:"department_breakdown"`
	TimeDistribution    []TimeBucketCount   `json:"time_distribution"`
	TopPerformers       []RankedPerson      `json:"top_performers"`
	RecentActivity      []attendance.Record `json:"recent_activity"`
	Alerts              []Alert             `json:"alerts"`

	WeeklyTrend   []DailyCount    `json:"weekly_trend"`
	MonthlyTrend  []WeeklyCount   `json:"monthly_trend,omitempty"`
	DegradedDates []string        `json:"degraded_dates,omitempty"`
	Anomalies     []RecordAnomaly `json:"anomalies,omitempty"`
}

// ========== BREAKDOWNS ==========

// DepartmentBucket is the present/absent split of one department
type DepartmentBucket struct {
	Name    string `json:"name"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// TimeBucket identifies a check-in time-of-day range
type TimeBucket string

const (
	TimeBucketBefore0900 TimeBucket = "before_0900"
	TimeBucket0900To0930 TimeBucket = "0900_0930"
	TimeBucket0930To1000 TimeBucket = "0930_1000"
	TimeBucketAfter1000  TimeBucket = "after_1000"
)

// TimeBuckets lists every bucket in chart order
var TimeBuckets = []TimeBucket{
	TimeBucketBefore0900,
	TimeBucket0900To0930,
	TimeBucket0930To1000,
	TimeBucketAfter1000,
}

// Label returns the display label of a bucket
func (b TimeBucket) Label() string {
	switch b {
	case TimeBucketBefore0900:
		return "Before 9:00"
	case TimeBucket0900To0930:
		return "9:00-9:30"
	case TimeBucket0930To1000:
		return "9:30-10:00"
	case TimeBucketAfter1000:
		return "After 10:00"
	}
	return string(b)
}

// TimeBucketCount is one slice of the arrival time distribution
type TimeBucketCount struct {
	Bucket TimeBucket `json:"bucket"`
	Label  string     `json:"label"`
	Count  int        `json:"count"`
}

// RankedPerson is one entry of the top performers list
type RankedPerson struct {
	PersonID       string  `json:"person_id"`
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	PresentDays    int     `json:"present_days"`
	AttendanceRate float64 `json:"attendance_rate"` // 0-100, one decimal
}

// ========== ALERTS ==========

// Severity of a dashboard alert
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Alert is a threshold rule that fired for today's figures
type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ========== TRENDS ==========

// DailyCount is the raw present count of one day of the window
type DailyCount struct {
	Date        string `json:"date"`
	Count       int    `json:"count"`
	FetchFailed bool   `json:"fetch_failed,omitempty"`
}

// WeeklyCount is the present total of one 7-day week of the month approximation
type WeeklyCount struct {
	Label     string `json:"label"` // "Week 1" .. "Week 4", oldest first
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Count     int    `json:"count"`
}

// RecordAnomaly describes a record that could not be classified
type RecordAnomaly struct {
	PersonID string `json:"person_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
}

// ========== DAILY ATTENDANCE STATS ==========

// DailyStatsResponse represents attendance statistics for a specific day
type DailyStatsResponse struct {
	Date             string             `json:"date"` // Format: "YYYY-MM-DD"
	Total            int                `json:"total"`
	Present          int                `json:"present"`
	Absent           int                `json:"absent"`
	Late             int                `json:"late"`
	OnTime           int                `json:"on_time"`
	PresentPercent   float64            `json:"present_percent"`
	LatePercent      float64            `json:"late_percent"`
	OnTimePercent    float64            `json:"on_time_percent"`
	AvgArrivalTime   string             `json:"avg_arrival_time"`
	TimeDistribution []TimeBucketCount  `json:"time_distribution"`
	Departments      []DepartmentBucket `json:"departments"`
	FetchFailed      bool               `json:"fetch_failed,omitempty"`
}

// StreamTokenResponse carries a short-lived token for the live stream endpoints
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
