package roster

import "errors"

// Roster domain errors
var (
	ErrRosterUnavailable = errors.New("roster is unavailable")
)
