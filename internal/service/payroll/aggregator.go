package payroll

import (
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Aggregate sums the shifts whose stored PayPeriod equals period. The stored
// label is trusted; dates are not re-resolved. The unknown bucket is never
// aggregated.
func Aggregate(shifts []payroll.Shift, period string) payroll.PeriodSummary {
	summary := payroll.PeriodSummary{
		Period:     period,
		TotalPay:   decimal.Zero,
		TotalBonus: decimal.Zero,
		TotalSales: decimal.Zero,
		TotalHours: decimal.Zero,
		AvgHourly:  decimal.Zero,
	}
	if period == "" || period == payroll.UnknownPeriod {
		return summary
	}

	for _, s := range shifts {
		if s.PayPeriod != period {
			continue
		}
		summary.TotalPay = summary.TotalPay.Add(s.Total)
		summary.TotalBonus = summary.TotalBonus.Add(s.Bonus)
		summary.TotalSales = summary.TotalSales.Add(s.SalesTotal)
		summary.TotalHours = summary.TotalHours.Add(s.TotalHours())
		summary.ShiftCount++
	}

	if !summary.TotalHours.IsZero() {
		summary.AvgHourly = summary.TotalPay.Div(summary.TotalHours)
	}

	return summary
}
