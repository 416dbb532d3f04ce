package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

func TestCurrentStreak(t *testing.T) {
	cases := []struct {
		name     string
		presence [][]string
		want     int
	}{
		{"trailing run after a gap", [][]string{{"a"}, {"a"}, {}, {"a"}, {"a"}}, 2},
		{"all present", [][]string{{"a"}, {"b"}, {"a", "b"}}, 3},
		{"today empty", [][]string{{"a"}, {"a"}, {}}, 0},
		{"all empty", [][]string{{}, {}, {}}, 0},
		{"no days", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CurrentStreak(daysFromPresence(c.presence...)))
		})
	}
}

func TestCurrentStreak_MalformedOnlyDayBreaksStreak(t *testing.T) {
	days := daysFromPresence([]string{"a"}, []string{"a"})
	days = append(days, ClassifyDay("2025-03-11", []attendance.Record{rec("a", "2025-03-11", "??")}))

	assert.Equal(t, 0, CurrentStreak(days))
}

func TestPerfectAttendeeCount(t *testing.T) {
	people := []roster.Person{person("A", "Ana"), person("B", "Ben")}
	days := daysFromPresence([]string{"A", "B"}, []string{"A"}, []string{"A", "B"})

	assert.Equal(t, 1, PerfectAttendeeCount(people, days))
}

func TestPerfectAttendeeCount_Edges(t *testing.T) {
	people := []roster.Person{person("A", "Ana")}

	assert.Equal(t, 0, PerfectAttendeeCount(people, nil))
	assert.Equal(t, 0, PerfectAttendeeCount(nil, daysFromPresence([]string{"A"})))
	assert.Equal(t, 1, PerfectAttendeeCount(people, daysFromPresence([]string{"A"})))
}
