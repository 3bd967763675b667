package http

import (
	"net/http"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/launa-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns the period summary, net estimate, chart and today's tally
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period") // YYYY-MM or a period label, default: the current period

	result, err := h.dashboardService.GetDashboard(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
