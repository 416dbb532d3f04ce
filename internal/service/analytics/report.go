package analytics

import (
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

// RatingOf buckets an attendance rate
func RatingOf(rate float64) string {
	switch {
	case rate >= 90:
		return report.RatingExcellent
	case rate >= 75:
		return report.RatingGood
	case rate >= 60:
		return report.RatingAverage
	default:
		return report.RatingPoor
	}
}

// SummarizePersons reports present and late days of every roster person over the window,
// in roster order. A person's late day is a present day whose first readable check-in is late.
func SummarizePersons(people []roster.Person, days []Day) ([]report.PersonReport, report.ReportSummary) {
	presence := presenceSets(days)
	late := make([]map[string]struct{}, len(days))
	for i, d := range days {
		late[i] = make(map[string]struct{})
		first := make(map[string]int, len(d.Timed))
		for _, rec := range d.Timed {
			if m, ok := first[rec.PersonID]; !ok || rec.Minutes < m {
				first[rec.PersonID] = rec.Minutes
			}
		}
		for id, m := range first {
			if IsLate(m) {
				late[i][id] = struct{}{}
			}
		}
	}

	persons := make([]report.PersonReport, 0, len(people))
	summary := report.ReportSummary{TotalStudents: len(people)}
	rateSum := 0.0
	for _, p := range people {
		pr := report.PersonReport{
			PersonID:   p.ID,
			Name:       p.Name,
			Department: DepartmentOf(p),
			TotalDays:  len(days),
		}
		for i := range days {
			if _, ok := presence[i][p.ID]; ok {
				pr.PresentDays++
			}
			if _, ok := late[i][p.ID]; ok {
				pr.LateDays++
			}
		}
		pr.AttendanceRate = Percent(pr.PresentDays, pr.TotalDays)
		pr.Rating = RatingOf(pr.AttendanceRate)

		summary.TotalPresent += pr.PresentDays
		summary.TotalLate += pr.LateDays
		rateSum += pr.AttendanceRate
		persons = append(persons, pr)
	}
	if len(people) > 0 {
		summary.AverageRate = round1(rateSum / float64(len(people)))
	}
	return persons, summary
}
