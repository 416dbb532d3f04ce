package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns the latest dashboard snapshot of the caller's class
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// Refresh builds and publishes a snapshot now
	Refresh(w http.ResponseWriter, r *http.Request)
	// GetDailyAttendanceStats returns attendance stats for a day
	GetDailyAttendanceStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Refresh handles POST /dashboard/refresh
func (h *dashboardHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Refresh(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dashboard refreshed", result)
}

// GetDailyAttendanceStats handles GET /dashboard/daily-attendance-stats
func (h *dashboardHandlerImpl) GetDailyAttendanceStats(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date") // format: YYYY-MM-DD, default: today

	result, err := h.dashboardService.GetDailyAttendanceStats(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
