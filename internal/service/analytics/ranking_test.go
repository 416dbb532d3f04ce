package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

func TestRankPersons_TieKeepsRosterOrder(t *testing.T) {
	people := []roster.Person{person("A", "Ana"), person("B", "Ben"), person("C", "Cy")}
	days := daysFromPresence(
		[]string{"A", "B", "C"},
		[]string{"A", "B", "C"},
		[]string{"A", "B"},
		[]string{"A", "B"},
	)

	top := RankPersons(people, days, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].PersonID)
	assert.Equal(t, "B", top[1].PersonID)
	assert.Equal(t, 100.0, top[0].AttendanceRate)
	assert.Equal(t, 4, top[1].PresentDays)
}

func TestRankPersons_Ordering(t *testing.T) {
	people := []roster.Person{
		person("low", "Lo", "Arts"),
		person("high", "Hi"),
		person("mid", "Mi"),
		person("mid2", "Mi2"),
	}
	days := daysFromPresence(
		[]string{"high", "mid", "mid2"},
		[]string{"high", "mid", "mid2"},
		[]string{"high", "low"},
	)

	ranked := RankPersons(people, days, DefaultTopPerformers)

	require.Len(t, ranked, 4)
	ids := []string{ranked[0].PersonID, ranked[1].PersonID, ranked[2].PersonID, ranked[3].PersonID}
	assert.Equal(t, []string{"high", "mid", "mid2", "low"}, ids)
	assert.Equal(t, 66.7, ranked[1].AttendanceRate)
	assert.Equal(t, 33.3, ranked[3].AttendanceRate)
	assert.Equal(t, "Arts", ranked[3].Department)
	assert.Equal(t, UnknownDepartment, ranked[0].Department)
}

func TestRankPersons_Edges(t *testing.T) {
	people := []roster.Person{person("A", "Ana")}

	assert.Empty(t, RankPersons(people, daysFromPresence([]string{"A"}), 0))

	empty := RankPersons(people, nil, 5)
	require.Len(t, empty, 1)
	assert.Equal(t, 0.0, empty[0].AttendanceRate)
}
