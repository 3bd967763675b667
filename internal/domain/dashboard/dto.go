package dashboard

import (
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Period      string                        `json:"period"`
	Summary     payroll.PeriodSummaryResponse `json:"summary"`
	NetEstimate payroll.NetSalaryResponse     `json:"net_estimate"` // Of the summary's total pay, full allowance
	Periods     []string                      `json:"periods"`      // Newest first, for the period picker
	Chart       []ChartPoint                  `json:"chart"`        // Oldest first
	Today       TodayResponse                 `json:"today"`

	// UnassignedShifts counts shifts whose date could not be read; they are
	// in no period and so in no summary.
	UnassignedShifts int `json:"unassigned_shifts"`
}

// ChartPoint is one bar of the earnings-per-period chart.
type ChartPoint struct {
	Period     string          `json:"period"`
	TotalPay   decimal.Decimal `json:"total_pay"`
	TotalBonus decimal.Decimal `json:"total_bonus"`
	TotalHours decimal.Decimal `json:"total_hours"`
	ShiftCount int             `json:"shift_count"`
}

// TodayResponse is the running tally for the current shift.
type TodayResponse struct {
	Date       string          `json:"date"`
	SalesTotal decimal.Decimal `json:"sales_total"`
	SalesCount int             `json:"sales_count"`
}
