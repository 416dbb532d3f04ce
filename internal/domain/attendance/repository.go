package attendance

import "context"

// Store is the read side of the external attendance store.
type Store interface {
	// GetByDate returns the check-ins of a class for one ISO date, earliest first.
	// Failures wrap ErrAttendanceFetch.
	GetByDate(ctx context.Context, classCode string, date string) ([]Record, error)
}
