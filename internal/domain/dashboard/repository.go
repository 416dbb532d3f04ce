package dashboard

import "context"

// SnapshotCache mirrors published snapshots so other replicas can serve them
type SnapshotCache interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	// Load returns ErrSnapshotNotFound when the class has no mirrored snapshot
	Load(ctx context.Context, classCode string) (*Snapshot, error)
}
