package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Store {
	return &attendanceRepository{db: db}
}

// GetByDate implements attendance.Store. check_in is returned as stored so that
// malformed values reach the engine and are reported rather than silently dropped.
func (a *attendanceRepository) GetByDate(ctx context.Context, classCode, date string) ([]attendance.Record, error) {
	query := `
		SELECT person_id, name, to_char(date, 'YYYY-MM-DD'), check_in
		FROM attendance_records
		WHERE class_code = $1 AND date = $2::date
		ORDER BY check_in ASC, id ASC
	`

	rows, err := a.db.Query(ctx, query, classCode, date)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", attendance.ErrAttendanceFetch, date, err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.PersonID, &rec.Name, &rec.Date, &rec.Time); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", attendance.ErrAttendanceFetch, date, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", attendance.ErrAttendanceFetch, date, err)
	}

	return records, nil
}
