package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

func TestSummarizePersons(t *testing.T) {
	people := []roster.Person{person("a", "Ana", "Science"), person("b", "Ben")}
	days := []Day{
		ClassifyDay("2025-03-10", []attendance.Record{
			rec("a", "2025-03-10", "09:45"),
			rec("b", "2025-03-10", "09:00"),
		}),
		ClassifyDay("2025-03-11", []attendance.Record{
			rec("a", "2025-03-11", "09:30"),
		}),
		ClassifyDay("2025-03-12", []attendance.Record{
			rec("a", "2025-03-12", "10:05"),
			rec("b", "2025-03-12", "broken"),
		}),
		FailedDay("2025-03-13"),
	}

	persons, summary := SummarizePersons(people, days)

	require.Len(t, persons, 2)
	assert.Equal(t, report.PersonReport{
		PersonID: "a", Name: "Ana", Department: "Science",
		TotalDays: 4, PresentDays: 3, LateDays: 2, AttendanceRate: 75, Rating: report.RatingGood,
	}, persons[0])
	assert.Equal(t, report.PersonReport{
		PersonID: "b", Name: "Ben", Department: UnknownDepartment,
		TotalDays: 4, PresentDays: 2, LateDays: 0, AttendanceRate: 50, Rating: report.RatingPoor,
	}, persons[1])
	assert.Equal(t, report.ReportSummary{TotalStudents: 2, AverageRate: 62.5, TotalPresent: 5, TotalLate: 2}, summary)
}

func TestSummarizePersons_Empty(t *testing.T) {
	persons, summary := SummarizePersons(nil, nil)

	assert.Empty(t, persons)
	assert.Equal(t, report.ReportSummary{}, summary)
}

func TestRatingOf(t *testing.T) {
	assert.Equal(t, report.RatingExcellent, RatingOf(90))
	assert.Equal(t, report.RatingGood, RatingOf(89.9))
	assert.Equal(t, report.RatingGood, RatingOf(75))
	assert.Equal(t, report.RatingAverage, RatingOf(60))
	assert.Equal(t, report.RatingPoor, RatingOf(59.9))
}
