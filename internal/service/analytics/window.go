// Package analytics turns a roster and daily attendance records into dashboard metrics.
// Every function here is pure: the same inputs always produce the same output.
package analytics

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

const (
	// DateLayout is the ISO calendar date format used by windows and records
	DateLayout = "2006-01-02"

	// WeekLength is the size of the trailing dashboard window
	WeekLength = 7
	// WeeksPerMonth is the number of weeks in the month approximation
	WeeksPerMonth = 4
	// MaxRangeDays bounds explicit ranges
	MaxRangeDays = 366
)

// Window is an ordered, contiguous, duplicate-free list of ISO dates, oldest first.
type Window []string

// Len returns the number of days in the window
func (w Window) Len() int {
	return len(w)
}

// First returns the oldest date, or "" for an empty window
func (w Window) First() string {
	if len(w) == 0 {
		return ""
	}
	return w[0]
}

// Last returns the newest date, or "" for an empty window
func (w Window) Last() string {
	if len(w) == 0 {
		return ""
	}
	return w[len(w)-1]
}

// TrailingWindow returns n dates ending at anchor inclusive. n <= 0 yields an empty window.
func TrailingWindow(n int, anchor time.Time) Window {
	if n <= 0 {
		return Window{}
	}
	day := civilDate(anchor)
	w := make(Window, n)
	for i := 0; i < n; i++ {
		w[i] = day.AddDate(0, 0, i-(n-1)).Format(DateLayout)
	}
	return w
}

// ExplicitWindow returns every date from start to end inclusive.
func ExplicitWindow(start, end string) (Window, error) {
	startDate, ok := validator.IsValidDate(start)
	if !ok {
		return nil, fmt.Errorf("%w: start %q", dashboard.ErrInvalidDate, start)
	}
	endDate, ok := validator.IsValidDate(end)
	if !ok {
		return nil, fmt.Errorf("%w: end %q", dashboard.ErrInvalidDate, end)
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: %s > %s", dashboard.ErrInvalidRange, start, end)
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > MaxRangeDays {
		return nil, fmt.Errorf("%w: %d days (max %d)", dashboard.ErrRangeTooLong, days, MaxRangeDays)
	}
	return TrailingWindow(days, endDate), nil
}

// MonthWindow approximates a month as four consecutive 7-day weeks ending at anchor,
// oldest week first.
func MonthWindow(anchor time.Time) []Window {
	all := TrailingWindow(WeekLength*WeeksPerMonth, anchor)
	weeks := make([]Window, 0, WeeksPerMonth)
	for i := 0; i < WeeksPerMonth; i++ {
		weeks = append(weeks, all[i*WeekLength:(i+1)*WeekLength])
	}
	return weeks
}

// civilDate drops the clock part while keeping the calendar date of t in its own zone.
// The result is expressed in UTC so AddDate never crosses a DST boundary.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
