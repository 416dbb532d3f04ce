package dashboard

import "errors"

// Dashboard domain errors
var (
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidRange       = errors.New("start date must not be after end date")
	ErrRangeTooLong       = errors.New("date range is too long")
	ErrSnapshotNotFound   = errors.New("dashboard snapshot not found")
	ErrSnapshotDiscarded  = errors.New("dashboard refresh cancelled before publish")
	ErrInvalidStreamToken = errors.New("invalid stream token")
)
