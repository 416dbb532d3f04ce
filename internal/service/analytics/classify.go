package analytics

import (
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
)

// TimedRecord is a record whose check-in time parsed cleanly
type TimedRecord struct {
	attendance.Record
	Minutes int
}

// Day is one date of a window together with its records.
// Records holds everything the store returned and drives raw presence; Timed holds
// only the records with a well-formed time and drives every time-based figure.
type Day struct {
	Date        string
	Records     []attendance.Record
	Timed       []TimedRecord
	Anomalies   []dashboard.RecordAnomaly
	FetchFailed bool
}

// ClassifyDay parses the check-in time of every record of one date.
func ClassifyDay(date string, records []attendance.Record) Day {
	day := Day{
		Date:    date,
		Records: records,
		Timed:   make([]TimedRecord, 0, len(records)),
	}
	for _, rec := range records {
		minutes, err := ToMinutes(rec.Time)
		if err != nil {
			day.Anomalies = append(day.Anomalies, dashboard.RecordAnomaly{
				PersonID: rec.PersonID,
				Date:     date,
				Time:     rec.Time,
				Reason:   err.Error(),
			})
			continue
		}
		day.Timed = append(day.Timed, TimedRecord{Record: rec, Minutes: minutes})
	}
	return day
}

// FailedDay is the empty stand-in for a date whose fetch failed.
func FailedDay(date string) Day {
	return Day{Date: date, Records: []attendance.Record{}, Timed: []TimedRecord{}, FetchFailed: true}
}

// Anomalies flattens the anomalies of every day, oldest first.
func Anomalies(days []Day) []dashboard.RecordAnomaly {
	var out []dashboard.RecordAnomaly
	for _, d := range days {
		out = append(out, d.Anomalies...)
	}
	return out
}
