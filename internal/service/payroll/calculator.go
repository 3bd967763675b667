package payroll

import (
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Calculator turns hours and sales into pay. It holds no state beyond the
// configured rates and is safe to share.
type Calculator struct {
	rates payroll.PayRates
}

func NewCalculator(rates payroll.PayRates) *Calculator {
	return &Calculator{rates: rates}
}

// Rates returns the tariff the calculator was built with.
func (c *Calculator) Rates() payroll.PayRates {
	return c.rates
}

// Compute returns wage, bonus threshold, bonus and total for one shift.
// Inputs must be non-negative; the request validators enforce that.
func (c *Calculator) Compute(dayHours, eveningHours, sales decimal.Decimal) payroll.PayResult {
	wage := dayHours.Mul(c.rates.DayRate).Add(eveningHours.Mul(c.rates.EveningRate))

	totalHours := dayHours.Add(eveningHours)
	// Sales must first cover the cost of employment for every hour past the grace period.
	threshold := decimal.Max(decimal.Zero, totalHours.Sub(c.rates.OffsetHours).Mul(c.rates.DeductionRate))
	bonus := decimal.Max(decimal.Zero, sales.Sub(threshold))

	return payroll.PayResult{
		Wage:      wage,
		Threshold: threshold,
		Bonus:     bonus,
		Total:     wage.Add(bonus),
	}
}

// Derive fills Wage, Bonus, Total and PayPeriod from the shift's own inputs.
// Every write path goes through here so the stored derived fields always
// match the raw ones.
func (c *Calculator) Derive(shift payroll.Shift) payroll.Shift {
	result := c.Compute(shift.DayHours, shift.EveningHours, shift.SalesTotal)
	shift.Wage = result.Wage
	shift.Bonus = result.Bonus
	shift.Total = result.Total
	shift.PayPeriod = ResolvePeriod(shift.Date)
	return shift
}

// Drifted reports whether the stored derived fields of shift disagree with a
// fresh derivation, e.g. after someone edited the spreadsheet by hand.
func (c *Calculator) Drifted(shift payroll.Shift) bool {
	fresh := c.Derive(shift)
	return !fresh.Wage.Equal(shift.Wage) ||
		!fresh.Bonus.Equal(shift.Bonus) ||
		!fresh.Total.Equal(shift.Total) ||
		fresh.PayPeriod != shift.PayPeriod
}
