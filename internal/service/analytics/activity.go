package analytics

import (
	"sort"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
)

// DefaultRecentActivity is the size of the recent activity feed
const DefaultRecentActivity = 10

// RecentActivity returns up to limit records of the day, latest check-in first.
// Records with an unreadable time sort last, in store order.
func RecentActivity(day Day, limit int) []attendance.Record {
	if limit <= 0 {
		return []attendance.Record{}
	}

	type keyed struct {
		rec     attendance.Record
		minutes int
	}
	items := make([]keyed, 0, len(day.Records))
	for _, rec := range day.Records {
		minutes, err := ToMinutes(rec.Time)
		if err != nil {
			minutes = -1
		}
		items = append(items, keyed{rec: rec, minutes: minutes})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].minutes > items[j].minutes
	})

	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]attendance.Record, 0, len(items))
	for _, it := range items {
		out = append(out, it.rec)
	}
	return out
}
