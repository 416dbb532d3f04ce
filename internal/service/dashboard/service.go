package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/sse"
)

type DashboardServiceImpl struct {
	aggregator *Aggregator
	board      *Board
	hub        *sse.Hub
	metrics    *metrics.Recorder
}

func NewDashboardService(aggregator *Aggregator, board *Board, hub *sse.Hub, recorder *metrics.Recorder) dashboard.DashboardService {
	return &DashboardServiceImpl{
		aggregator: aggregator,
		board:      board,
		hub:        hub,
		metrics:    recorder,
	}
}

// RefreshClass builds a snapshot for classCode and publishes it.
// On failure the previously published snapshot stays in place.
func (s *DashboardServiceImpl) RefreshClass(ctx context.Context, classCode string) (*dashboard.Snapshot, error) {
	start := time.Now()

	snapshot, err := s.aggregator.Build(ctx, classCode)
	if err == nil {
		err = s.board.Publish(ctx, snapshot)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.metrics.Refresh(classCode, metrics.ResultDiscarded, time.Since(start))
			slog.Info("Dashboard refresh discarded", "class_code", classCode, "reason", ctxErr)
			if errors.Is(err, dashboard.ErrSnapshotDiscarded) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", dashboard.ErrSnapshotDiscarded, err)
		}
		s.metrics.Refresh(classCode, metrics.ResultFailed, time.Since(start))
		slog.Error("Dashboard refresh failed", "class_code", classCode, "error", err)
		return nil, err
	}

	s.metrics.Refresh(classCode, metrics.ResultSuccess, time.Since(start))
	slog.Debug("Dashboard refreshed",
		"class_code", classCode,
		"snapshot_id", snapshot.ID,
		"total_users", snapshot.TotalUsers,
		"today_attendance", snapshot.TodayAttendance,
		"duration", time.Since(start))
	return snapshot, nil
}

// GetDashboard returns the latest snapshot of the caller's class
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.Snapshot, error) {
	classCode, err := jwt.ClassCodeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.board.Latest(ctx, classCode)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, dashboard.ErrSnapshotNotFound) {
		return nil, err
	}
	return s.RefreshClass(ctx, classCode)
}

func (s *DashboardServiceImpl) Refresh(ctx context.Context) (*dashboard.Snapshot, error) {
	classCode, err := jwt.ClassCodeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.RefreshClass(ctx, classCode)
}

func (s *DashboardServiceImpl) GetDailyAttendanceStats(ctx context.Context, date string) (*dashboard.DailyStatsResponse, error) {
	classCode, err := jwt.ClassCodeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.BuildDaily(ctx, classCode, date)
}

// Subscribe registers a listener for classCode. The latest snapshot, when there is one,
// is queued first so a new listener renders immediately.
func (s *DashboardServiceImpl) Subscribe(ctx context.Context, classCode string) (<-chan sse.Event, func()) {
	ch, cleanup := s.hub.Subscribe(classCode)
	slog.Debug("Stream subscriber connected", "class_code", classCode, "subscribers", s.hub.SubscriberCount(classCode))

	if snapshot, err := s.board.Latest(ctx, classCode); err == nil {
		select {
		case ch <- sse.Event{ClassCode: classCode, Event: sse.EventSnapshot, Data: snapshot}:
		default:
		}
	}
	return ch, cleanup
}
