package analytics

import (
	"strings"

	"github.com/samber/lo"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

// UnknownDepartment names the bucket of persons without a department
const UnknownDepartment = "Unknown"

// RosterIndex maps person id to person; built once per cycle
type RosterIndex map[string]roster.Person

// IndexRoster keys the roster by person id. On duplicate ids the last entry wins.
func IndexRoster(people []roster.Person) RosterIndex {
	return lo.KeyBy(people, func(p roster.Person) string { return p.ID })
}

// DepartmentOf returns the person's department or "Unknown"
func DepartmentOf(p roster.Person) string {
	if p.Department == nil || strings.TrimSpace(*p.Department) == "" {
		return UnknownDepartment
	}
	return *p.Department
}

// CountDepartments returns the number of distinct departments on the roster
func CountDepartments(people []roster.Person) int {
	return len(lo.Uniq(lo.Map(people, func(p roster.Person, _ int) string { return DepartmentOf(p) })))
}

// AggregateDepartments splits the roster into department buckets and counts the distinct
// roster persons with a record in each. Records of unknown persons are ignored.
// Buckets come out in first-seen roster order.
func AggregateDepartments(people []roster.Person, index RosterIndex, records []attendance.Record) []dashboard.DepartmentBucket {
	order := make([]string, 0)
	buckets := make(map[string]*dashboard.DepartmentBucket)
	for _, p := range people {
		name := DepartmentOf(p)
		b, ok := buckets[name]
		if !ok {
			b = &dashboard.DepartmentBucket{Name: name}
			buckets[name] = b
			order = append(order, name)
		}
		b.Total++
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		p, ok := index[rec.PersonID]
		if !ok {
			continue
		}
		if _, dup := seen[rec.PersonID]; dup {
			continue
		}
		seen[rec.PersonID] = struct{}{}
		if b, ok := buckets[DepartmentOf(p)]; ok {
			b.Present++
		}
	}

	out := make([]dashboard.DepartmentBucket, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		if b.Present > b.Total {
			b.Present = b.Total
		}
		b.Absent = b.Total - b.Present
		out = append(out, *b)
	}
	return out
}
