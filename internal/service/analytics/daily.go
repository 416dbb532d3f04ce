package analytics

import (
	"math"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
)

// DailyMetrics is the present/late split of one day
type DailyMetrics struct {
	Present        int
	Absent         int
	Late           int
	OnTime         int
	AvgArrivalTime string
}

// ComputeDailyMetrics derives the figures of one day against the roster size.
func ComputeDailyMetrics(day Day, rosterSize int) DailyMetrics {
	m := DailyMetrics{
		Present:        len(day.Records),
		AvgArrivalTime: FormatMinutes(0),
	}
	m.Absent = rosterSize - m.Present
	if m.Absent < 0 {
		m.Absent = 0
	}

	total := 0
	for _, rec := range day.Timed {
		total += rec.Minutes
		if IsLate(rec.Minutes) {
			m.Late++
		} else {
			m.OnTime++
		}
	}
	if len(day.Timed) > 0 {
		m.AvgArrivalTime = FormatMinutes(total / len(day.Timed))
	}
	return m
}

// TimeDistribution counts the day's arrivals per time-of-day bucket, in chart order.
func TimeDistribution(day Day) []dashboard.TimeBucketCount {
	counts := make(map[dashboard.TimeBucket]int, len(dashboard.TimeBuckets))
	for _, rec := range day.Timed {
		counts[BucketOf(rec.Minutes)]++
	}

	out := make([]dashboard.TimeBucketCount, 0, len(dashboard.TimeBuckets))
	for _, b := range dashboard.TimeBuckets {
		out = append(out, dashboard.TimeBucketCount{Bucket: b, Label: b.Label(), Count: counts[b]})
	}
	return out
}

// Percent returns part/whole*100 rounded to one decimal, or 0 when whole is zero.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
