package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownPeriod labels a shift whose date could not be read. It never matches
// a real period and is never aggregated.
const UnknownPeriod = "unknown"

// Sale - A single sale logged by an employee during a shift
type Sale struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	Amount     decimal.Decimal
	Note       string

	// RawTimestamp holds hand-entered timestamp text that could not be
	// parsed. It is written back unchanged while Timestamp stays zero.
	RawTimestamp string
}

// Day returns the UTC calendar day the sale was logged on. A sale with an
// unreadable timestamp has no day.
func (s Sale) Day() string {
	if s.Timestamp.IsZero() {
		return ""
	}
	return s.Timestamp.UTC().Format(dateLayout)
}

// Shift - A closed shift. Wage, Bonus, Total and PayPeriod are derived from
// the other fields and stored alongside them for reporting.
type Shift struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	DayHours     decimal.Decimal
	EveningHours decimal.Decimal
	SalesTotal   decimal.Decimal

	// RawDate holds hand-entered date text that could not be parsed. It is
	// written back unchanged while Date stays zero.
	RawDate string

	// Derived
	Wage      decimal.Decimal
	Bonus     decimal.Decimal
	Total     decimal.Decimal
	PayPeriod string
}

// TotalHours returns day plus evening hours.
func (s Shift) TotalHours() decimal.Decimal {
	return s.DayHours.Add(s.EveningHours)
}

// PayRates - Hourly tariffs and the bonus threshold parameters
type PayRates struct {
	DayRate       decimal.Decimal
	EveningRate   decimal.Decimal
	OffsetHours   decimal.Decimal
	DeductionRate decimal.Decimal
}

// TaxRates - Statutory deductions used for the net salary estimate
type TaxRates struct {
	PensionRate       decimal.Decimal
	UnionRate         decimal.Decimal
	TaxRate1          decimal.Decimal
	PersonalAllowance decimal.Decimal
}

// PayResult - Output of the pay calculation for one shift
type PayResult struct {
	Wage      decimal.Decimal
	Threshold decimal.Decimal
	Bonus     decimal.Decimal
	Total     decimal.Decimal
}

// NetSalaryBreakdown - Every step from gross to net, kept for display and audit
type NetSalaryBreakdown struct {
	Gross     decimal.Decimal
	Pension   decimal.Decimal
	UnionFee  decimal.Decimal
	TaxBase   decimal.Decimal
	IncomeTax decimal.Decimal
	Allowance decimal.Decimal
	FinalTax  decimal.Decimal
	Net       decimal.Decimal

	// AllowanceCredit is the nominal credit, the personal allowance times
	// the usage fraction. Allowance is the part of it applied against tax.
	AllowanceCredit decimal.Decimal
}

// PeriodSummary - Aggregate over the shifts of one pay period
type PeriodSummary struct {
	Period     string
	TotalPay   decimal.Decimal
	TotalBonus decimal.Decimal
	TotalSales decimal.Decimal
	TotalHours decimal.Decimal
	ShiftCount int
	AvgHourly  decimal.Decimal
}

// DefaultPayRates returns the shop's standard tariff.
func DefaultPayRates() PayRates {
	return PayRates{
		DayRate:       decimal.RequireFromString("2797.0"),
		EveningRate:   decimal.RequireFromString("3730.0"),
		OffsetHours:   decimal.RequireFromString("1.0"),
		DeductionRate: decimal.RequireFromString("636.0"),
	}
}

// DefaultTaxRates returns the flat-bracket deduction rates.
func DefaultTaxRates() TaxRates {
	return TaxRates{
		PensionRate:       decimal.RequireFromString("0.04"),
		UnionRate:         decimal.RequireFromString("0.007"),
		TaxRate1:          decimal.RequireFromString("0.3145"),
		PersonalAllowance: decimal.RequireFromString("64926"),
	}
}
