package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/service/analytics"
	attendancesvc "github.com/cmlabs-hris/attendance-dashboard-go/internal/service/attendance"
)

// MonthlyMode selects how the monthly figure is derived
type MonthlyMode string

const (
	// MonthlyExtrapolate reports weekly * 4 from the 7-day fetch
	MonthlyExtrapolate MonthlyMode = "extrapolate"
	// MonthlyTrailing fetches 28 days and sums four trailing weeks
	MonthlyTrailing MonthlyMode = "trailing"
)

// ParseMonthlyMode accepts "extrapolate" or "trailing"; empty means extrapolate
func ParseMonthlyMode(s string) (MonthlyMode, error) {
	switch MonthlyMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MonthlyExtrapolate:
		return MonthlyExtrapolate, nil
	case MonthlyTrailing:
		return MonthlyTrailing, nil
	}
	return "", fmt.Errorf("unknown monthly mode %q", s)
}

type Options struct {
	Location       *time.Location
	MonthlyMode    MonthlyMode
	TopPerformers  int
	RecentActivity int
	Now            func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.MonthlyMode == "" {
		o.MonthlyMode = MonthlyExtrapolate
	}
	if o.TopPerformers <= 0 {
		o.TopPerformers = analytics.DefaultTopPerformers
	}
	if o.RecentActivity <= 0 {
		o.RecentActivity = analytics.DefaultRecentActivity
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Aggregator runs one full computation cycle for a class
type Aggregator struct {
	roster  roster.Provider
	fetcher *attendancesvc.Fetcher
	opts    Options
}

func NewAggregator(rosterProvider roster.Provider, fetcher *attendancesvc.Fetcher, opts Options) *Aggregator {
	return &Aggregator{
		roster:  rosterProvider,
		fetcher: fetcher,
		opts:    opts.withDefaults(),
	}
}

// Build loads the roster and the trailing window and assembles a snapshot.
// A roster failure or a cancelled ctx fails the cycle; failed days do not.
func (a *Aggregator) Build(ctx context.Context, classCode string) (*dashboard.Snapshot, error) {
	now := a.opts.Now().In(a.opts.Location)

	people, err := a.roster.GetAll(ctx, classCode)
	if err != nil {
		return nil, fmt.Errorf("load roster for %s: %w", classCode, err)
	}

	fetchDays := analytics.WeekLength
	if a.opts.MonthlyMode == MonthlyTrailing {
		fetchDays = analytics.WeekLength * analytics.WeeksPerMonth
	}

	days, err := a.fetcher.FetchWindow(ctx, classCode, analytics.TrailingWindow(fetchDays, now))
	if err != nil {
		return nil, fmt.Errorf("fetch attendance for %s: %w", classCode, err)
	}

	snapshot := assemble(classCode, now, people, days, a.opts)
	snapshot.ID = newSnapshotID()
	return snapshot, nil
}

// BuildDaily computes the statistics of one date. An empty date means today.
func (a *Aggregator) BuildDaily(ctx context.Context, classCode, date string) (*dashboard.DailyStatsResponse, error) {
	if date == "" {
		date = a.opts.Now().In(a.opts.Location).Format(analytics.DateLayout)
	} else if _, ok := validator.IsValidDate(date); !ok {
		return nil, fmt.Errorf("%w: %q", dashboard.ErrInvalidDate, date)
	}

	people, err := a.roster.GetAll(ctx, classCode)
	if err != nil {
		return nil, fmt.Errorf("load roster for %s: %w", classCode, err)
	}

	days, err := a.fetcher.FetchWindow(ctx, classCode, analytics.Window{date})
	if err != nil {
		return nil, fmt.Errorf("fetch attendance for %s: %w", classCode, err)
	}
	day := days[0]
	m := analytics.ComputeDailyMetrics(day, len(people))

	return &dashboard.DailyStatsResponse{
		Date:             date,
		Total:            len(people),
		Present:          m.Present,
		Absent:           m.Absent,
		Late:             m.Late,
		OnTime:           m.OnTime,
		PresentPercent:   analytics.Percent(m.Present, len(people)),
		LatePercent:      analytics.Percent(m.Late, len(people)),
		OnTimePercent:    analytics.Percent(m.OnTime, len(people)),
		AvgArrivalTime:   m.AvgArrivalTime,
		TimeDistribution: analytics.TimeDistribution(day),
		Departments:      analytics.AggregateDepartments(people, analytics.IndexRoster(people), day.Records),
		FetchFailed:      day.FetchFailed,
	}, nil
}

// assemble computes every snapshot figure from the roster and the fetched days,
// oldest first. The last seven days form the dashboard week; today is the last day.
func assemble(classCode string, now time.Time, people []roster.Person, days []analytics.Day, opts Options) *dashboard.Snapshot {
	week := days
	if len(week) > analytics.WeekLength {
		week = week[len(week)-analytics.WeekLength:]
	}
	today := week[len(week)-1]

	index := analytics.IndexRoster(people)
	daily := analytics.ComputeDailyMetrics(today, len(people))
	rate := analytics.Percent(daily.Present, len(people))

	weeklyTrend := make([]dashboard.DailyCount, 0, len(week))
	weekly := 0
	for _, d := range week {
		weekly += len(d.Records)
		weeklyTrend = append(weeklyTrend, dashboard.DailyCount{Date: d.Date, Count: len(d.Records), FetchFailed: d.FetchFailed})
	}

	s := &dashboard.Snapshot{
		ClassCode:              classCode,
		Date:                   today.Date,
		GeneratedAt:            now,
		TotalUsers:             len(people),
		TotalDepartments:       analytics.CountDepartments(people),
		TodayAttendance:        daily.Present,
		TodayAbsent:            daily.Absent,
		WeeklyAttendance:       weekly,
		AttendanceRatePercent:  rate,
		LateArrivals:           daily.Late,
		OnTimeArrivals:         daily.OnTime,
		AvgAttendanceTime:      daily.AvgArrivalTime,
		ConsecutivePresentDays: analytics.CurrentStreak(week),
		PerfectAttendeeCount:   analytics.PerfectAttendeeCount(people, week),
		DepartmentBreakdown:    analytics.AggregateDepartments(people, index, today.Records),
		TimeDistribution:       analytics.TimeDistribution(today),
		TopPerformers:          analytics.RankPersons(people, week, opts.TopPerformers),
		RecentActivity:         analytics.RecentActivity(today, opts.RecentActivity),
		Alerts:                 analytics.EvaluateAlerts(daily.Absent, daily.Late, rate),
		WeeklyTrend:            weeklyTrend,
		Anomalies:              analytics.Anomalies(days),
	}

	if opts.MonthlyMode == MonthlyTrailing && len(days) == analytics.WeekLength*analytics.WeeksPerMonth {
		s.MonthlyTrend = make([]dashboard.WeeklyCount, 0, analytics.WeeksPerMonth)
		for i := 0; i < analytics.WeeksPerMonth; i++ {
			chunk := days[i*analytics.WeekLength : (i+1)*analytics.WeekLength]
			count := 0
			for _, d := range chunk {
				count += len(d.Records)
			}
			s.MonthlyTrend = append(s.MonthlyTrend, dashboard.WeeklyCount{
				Label:     fmt.Sprintf("Week %d", i+1),
				StartDate: chunk[0].Date,
				EndDate:   chunk[len(chunk)-1].Date,
				Count:     count,
			})
			s.MonthlyAttendance += count
		}
	} else {
		s.MonthlyAttendance = weekly * analytics.WeeksPerMonth
		s.MonthlyApproximate = true
	}

	for _, d := range days {
		if d.FetchFailed {
			s.DegradedDates = append(s.DegradedDates, d.Date)
		}
	}
	return s
}

func newSnapshotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
