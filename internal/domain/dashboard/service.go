package dashboard

import (
	"context"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/sse"
)

// Refresher builds and publishes a fresh snapshot for one class
type Refresher interface {
	RefreshClass(ctx context.Context, classCode string) (*Snapshot, error)
}

// DashboardService defines the interface for dashboard operations.
// The class scope of every context-only method comes from the caller's JWT claims.
type DashboardService interface {
	Refresher

	// GetDashboard returns the latest published snapshot, building one when none exists yet
	GetDashboard(ctx context.Context) (*Snapshot, error)

	// Refresh builds and publishes a snapshot now
	Refresh(ctx context.Context) (*Snapshot, error)

	// GetDailyAttendanceStats returns attendance statistics for a specific day (default today)
	GetDailyAttendanceStats(ctx context.Context, date string) (*DailyStatsResponse, error)

	// Subscribe registers a live listener for published snapshots of a class
	Subscribe(ctx context.Context, classCode string) (<-chan sse.Event, func())
}
