package analytics

import (
	"github.com/samber/lo"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

// CurrentStreak counts consecutive days with at least one well-formed record,
// scanning from the newest day back and stopping at the first empty day.
func CurrentStreak(days []Day) int {
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if len(days[i].Timed) == 0 {
			break
		}
		streak++
	}
	return streak
}

// PerfectAttendeeCount counts roster persons with a record on every day of the window.
// An empty window has no perfect attendees.
func PerfectAttendeeCount(people []roster.Person, days []Day) int {
	if len(days) == 0 {
		return 0
	}
	presence := presenceSets(days)
	return lo.CountBy(people, func(p roster.Person) bool {
		for _, present := range presence {
			if _, ok := present[p.ID]; !ok {
				return false
			}
		}
		return true
	})
}

// presenceSets returns, per day, the set of person ids with any record.
func presenceSets(days []Day) []map[string]struct{} {
	return lo.Map(days, func(d Day, _ int) map[string]struct{} {
		return lo.SliceToMap(d.Records, func(r attendance.Record) (string, struct{}) {
			return r.PersonID, struct{}{}
		})
	})
}
