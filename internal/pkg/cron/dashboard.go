package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
)

// DefaultRefreshInterval matches the dashboard's polling cadence
const DefaultRefreshInterval = 30 * time.Second

// DashboardJobs refreshes the dashboard snapshot of every configured class
type DashboardJobs struct {
	refresher dashboard.Refresher
	classes   []string
	interval  time.Duration
}

// NewDashboardJobs creates dashboard refresh jobs
func NewDashboardJobs(refresher dashboard.Refresher, classes []string, interval time.Duration) *DashboardJobs {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &DashboardJobs{
		refresher: refresher,
		classes:   classes,
		interval:  interval,
	}
}

// JobName is the scheduler name of a class's refresh job
func JobName(classCode string) string {
	return "refresh_dashboard:" + classCode
}

// RegisterJobs registers one refresh job per class
func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler) {
	for _, classCode := range j.classes {
		scheduler.AddJob(JobName(classCode), j.interval, j.RefreshClass(classCode))
	}
}

// TriggerAll asks every class's refresh job to run now and returns how many were queued
func (j *DashboardJobs) TriggerAll(scheduler *Scheduler) int {
	queued := 0
	for _, classCode := range j.classes {
		if scheduler.Trigger(JobName(classCode)) {
			queued++
		}
	}
	return queued
}

// RefreshClass returns the job function for one class
func (j *DashboardJobs) RefreshClass(classCode string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		snapshot, err := j.refresher.RefreshClass(ctx, classCode)
		if err != nil {
			return err
		}
		slog.Debug("Cron: Dashboard refreshed",
			"class_code", classCode,
			"snapshot_id", snapshot.ID,
			"degraded_dates", len(snapshot.DegradedDates))
		return nil
	}
}
