package analytics

import (
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

func person(id, name string, dept ...string) roster.Person {
	p := roster.Person{ID: id, Name: name, ClassCode: "CS101"}
	if len(dept) > 0 {
		d := dept[0]
		p.Department = &d
	}
	return p
}

func rec(id, date, clock string) attendance.Record {
	return attendance.Record{PersonID: id, Name: "name-" + id, Date: date, Time: clock}
}

// daysFromPresence builds consecutive days from per-day lists of present person ids.
func daysFromPresence(presence ...[]string) []Day {
	window := TrailingWindow(len(presence), mustDate("2025-03-10"))
	days := make([]Day, 0, len(presence))
	for i, ids := range presence {
		records := make([]attendance.Record, 0, len(ids))
		for _, id := range ids {
			records = append(records, rec(id, window[i], "09:00"))
		}
		days = append(days, ClassifyDay(window[i], records))
	}
	return days
}
