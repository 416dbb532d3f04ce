package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/sse"
)

// Board holds the latest published snapshot of every class
type Board struct {
	latest sync.Map // class code -> *dashboard.Snapshot
	hub    *sse.Hub
	mirror dashboard.SnapshotCache
}

// NewBoard creates a board; mirror may be nil
func NewBoard(hub *sse.Hub, mirror dashboard.SnapshotCache) *Board {
	return &Board{hub: hub, mirror: mirror}
}

// Publish replaces the class's latest snapshot and notifies live subscribers.
// A cycle whose ctx is already done is discarded and never becomes visible.
func (b *Board) Publish(ctx context.Context, snapshot *dashboard.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", dashboard.ErrSnapshotDiscarded, err)
	}

	b.latest.Store(snapshot.ClassCode, snapshot)
	if b.hub != nil {
		b.hub.Publish(snapshot.ClassCode, sse.Event{Event: sse.EventSnapshot, Data: snapshot})
	}

	if b.mirror != nil {
		if err := b.mirror.Save(ctx, snapshot); err != nil {
			slog.Warn("Failed to mirror dashboard snapshot", "class_code", snapshot.ClassCode, "error", err)
		}
	}
	return nil
}

// Latest returns the class's latest snapshot, falling back to the mirror
func (b *Board) Latest(ctx context.Context, classCode string) (*dashboard.Snapshot, error) {
	if v, ok := b.latest.Load(classCode); ok {
		return v.(*dashboard.Snapshot), nil
	}

	if b.mirror != nil {
		snapshot, err := b.mirror.Load(ctx, classCode)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, dashboard.ErrSnapshotNotFound) {
			slog.Warn("Failed to read mirrored dashboard snapshot", "class_code", classCode, "error", err)
		}
	}
	return nil, dashboard.ErrSnapshotNotFound
}
