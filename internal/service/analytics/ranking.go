package analytics

import (
	"sort"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

// DefaultTopPerformers is the dashboard's leaderboard size
const DefaultTopPerformers = 5

// RankPersons rates every roster person as presentDays / window length and returns the
// first n, best first. Equal rates keep roster order.
func RankPersons(people []roster.Person, days []Day, n int) []dashboard.RankedPerson {
	if n <= 0 {
		return []dashboard.RankedPerson{}
	}

	presence := presenceSets(days)
	ranked := make([]dashboard.RankedPerson, 0, len(people))
	for _, p := range people {
		presentDays := 0
		for _, present := range presence {
			if _, ok := present[p.ID]; ok {
				presentDays++
			}
		}
		ranked = append(ranked, dashboard.RankedPerson{
			PersonID:       p.ID,
			Name:           p.Name,
			Department:     DepartmentOf(p),
			PresentDays:    presentDays,
			AttendanceRate: Percent(presentDays, len(days)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AttendanceRate > ranked[j].AttendanceRate
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
