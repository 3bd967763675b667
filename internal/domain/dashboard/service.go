package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns everything the dashboard shows for period, which
	// may be "YYYY-MM", a full label, or empty for the current period.
	GetDashboard(ctx context.Context, period string) (DashboardResponse, error)
}
