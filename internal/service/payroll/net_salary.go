package payroll

import (
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// NetEstimator approximates take-home pay with a single flat tax bracket.
type NetEstimator struct {
	rates payroll.TaxRates
}

func NewNetEstimator(rates payroll.TaxRates) *NetEstimator {
	return &NetEstimator{rates: rates}
}

// Estimate itemizes the deductions on gross. allowanceUsage is the share of
// the personal allowance applied this period, in [0, 1].
//
// Allowance in the result is the credit actually used against income tax,
// so it never exceeds IncomeTax and FinalTax never goes below zero.
// AllowanceCredit keeps the nominal credit for the breakdown.
func (e *NetEstimator) Estimate(gross, allowanceUsage decimal.Decimal) payroll.NetSalaryBreakdown {
	pension := gross.Mul(e.rates.PensionRate)
	unionFee := gross.Mul(e.rates.UnionRate)
	taxBase := gross.Sub(pension).Sub(unionFee)
	incomeTax := taxBase.Mul(e.rates.TaxRate1)

	credit := e.rates.PersonalAllowance.Mul(allowanceUsage)
	finalTax := decimal.Max(decimal.Zero, incomeTax.Sub(credit))
	allowance := incomeTax.Sub(finalTax)

	return payroll.NetSalaryBreakdown{
		Gross:     gross,
		Pension:   pension,
		UnionFee:  unionFee,
		TaxBase:   taxBase,
		IncomeTax: incomeTax,
		Allowance: allowance,
		FinalTax:  finalTax,
		Net:       taxBase.Sub(finalTax),

		AllowanceCredit: credit,
	}
}

// EstimateFullAllowance applies the whole personal allowance.
func (e *NetEstimator) EstimateFullAllowance(gross decimal.Decimal) payroll.NetSalaryBreakdown {
	return e.Estimate(gross, decimal.NewFromInt(1))
}
