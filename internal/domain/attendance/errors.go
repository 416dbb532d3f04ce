package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceFetch = errors.New("failed to fetch attendance records")
	ErrMalformedTime   = errors.New("malformed check-in time")
)
