package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
)

// DefaultSnapshotTTL keeps a mirrored snapshot for a few refresh intervals
const DefaultSnapshotTTL = 5 * time.Minute

type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) dashboard.SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &snapshotCache{client: client, ttl: ttl}
}

// SnapshotKey is the key a class's latest snapshot is stored under
func SnapshotKey(classCode string) string {
	return "dashboard:snapshot:" + classCode
}

// Save implements dashboard.SnapshotCache.
func (c *snapshotCache) Save(ctx context.Context, snapshot *dashboard.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey(snapshot.ClassCode), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Load implements dashboard.SnapshotCache.
func (c *snapshotCache) Load(ctx context.Context, classCode string) (*dashboard.Snapshot, error) {
	cached, err := c.client.Get(ctx, SnapshotKey(classCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dashboard.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot dashboard.Snapshot
	if err := json.Unmarshal(cached, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
