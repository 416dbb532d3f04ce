package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, jwt.ErrClassScopeMissing):
		Unauthorized(w, "Token has no class scope")
	case errors.Is(err, jwt.ErrInvalidClassCode):
		Unauthorized(w, "Token has an invalid class code")
	case errors.Is(err, dashboard.ErrInvalidStreamToken):
		Unauthorized(w, "Invalid stream token")

	// Dashboard domain errors
	case errors.Is(err, dashboard.ErrInvalidDate),
		errors.Is(err, dashboard.ErrInvalidRange),
		errors.Is(err, dashboard.ErrRangeTooLong):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, dashboard.ErrSnapshotNotFound):
		NotFound(w, "Dashboard snapshot not found")
	case errors.Is(err, dashboard.ErrSnapshotDiscarded):
		ServiceUnavailable(w, "Dashboard refresh was cancelled")

	// Upstream stores
	case errors.Is(err, roster.ErrRosterUnavailable):
		ServiceUnavailable(w, "Roster is unavailable")
	case errors.Is(err, attendance.ErrAttendanceFetch):
		ServiceUnavailable(w, "Attendance records are unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
