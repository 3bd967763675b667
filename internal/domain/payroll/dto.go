package payroll

import (
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ========== SALE DTOs ==========

type RecordSaleRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Timestamp *string         `json:"timestamp,omitempty"` // RFC3339, defaults to now
}

func (r *RecordSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsNonNegative(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be an RFC3339 timestamp"})
		}
	}
	if len(r.Note) > 500 {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSaleRequest struct {
	ID        string           `json:"-"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Note      *string          `json:"note,omitempty"`
	Timestamp *string          `json:"timestamp,omitempty"`
}

func (r *UpdateSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Amount != nil && !validator.IsNonNegative(*r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaleFilter struct {
	Date *string `json:"date,omitempty"` // YYYY-MM-DD
}

func (f *SaleFilter) Validate() error {
	if f.Date == nil {
		return nil
	}
	if _, ok := validator.IsValidDate(*f.Date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
	}
	return nil
}

type SaleResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Timestamp  string          `json:"timestamp"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
}

func NewSaleResponse(s Sale) SaleResponse {
	timestamp := s.RawTimestamp
	if !s.Timestamp.IsZero() {
		timestamp = s.Timestamp.Format(time.RFC3339)
	}
	return SaleResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Timestamp:  timestamp,
		Amount:     s.Amount,
		Note:       s.Note,
	}
}

// ========== SHIFT DTOs ==========

type RecordShiftRequest struct {
	Date         string           `json:"date"` // YYYY-MM-DD
	DayHours     decimal.Decimal  `json:"day_hours"`
	EveningHours decimal.Decimal  `json:"evening_hours"`
	SalesTotal   *decimal.Decimal `json:"sales_total,omitempty"` // Empty = sum of the day's logged sales
}

func (r *RecordShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	errs = append(errs, validateHours(r.DayHours, r.EveningHours)...)
	if r.SalesTotal != nil && !validator.IsNonNegative(*r.SalesTotal) {
		errs = append(errs, validator.ValidationError{Field: "sales_total", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID           string           `json:"-"`
	Date         *string          `json:"date,omitempty"`
	DayHours     *decimal.Decimal `json:"day_hours,omitempty"`
	EveningHours *decimal.Decimal `json:"evening_hours,omitempty"`
	SalesTotal   *decimal.Decimal `json:"sales_total,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.DayHours != nil && !validator.IsValidHours(*r.DayHours) {
		errs = append(errs, validator.ValidationError{Field: "day_hours", Message: "must be between 0 and 24"})
	}
	if r.EveningHours != nil && !validator.IsValidHours(*r.EveningHours) {
		errs = append(errs, validator.ValidationError{Field: "evening_hours", Message: "must be between 0 and 24"})
	}
	if r.SalesTotal != nil && !validator.IsNonNegative(*r.SalesTotal) {
		errs = append(errs, validator.ValidationError{Field: "sales_total", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftFilter struct {
	Period *string `json:"period,omitempty"`
}

type ShiftResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Date         string          `json:"date"`
	DayHours     decimal.Decimal `json:"day_hours"`
	EveningHours decimal.Decimal `json:"evening_hours"`
	SalesTotal   decimal.Decimal `json:"sales_total"`
	Wage         decimal.Decimal `json:"wage"`
	Bonus        decimal.Decimal `json:"bonus"`
	Total        decimal.Decimal `json:"total"`
	PayPeriod    string          `json:"pay_period"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	date := s.RawDate
	if !s.Date.IsZero() {
		date = s.Date.Format(dateLayout)
	}
	return ShiftResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		Date:         date,
		DayHours:     s.DayHours,
		EveningHours: s.EveningHours,
		SalesTotal:   s.SalesTotal,
		Wage:         s.Wage,
		Bonus:        s.Bonus,
		Total:        s.Total,
		PayPeriod:    s.PayPeriod,
	}
}

// ========== CALCULATION DTOs ==========

type PreviewPayRequest struct {
	Date         *string         `json:"date,omitempty"`
	DayHours     decimal.Decimal `json:"day_hours"`
	EveningHours decimal.Decimal `json:"evening_hours"`
	Sales        decimal.Decimal `json:"sales"`
}

func (r *PreviewPayRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	errs = append(errs, validateHours(r.DayHours, r.EveningHours)...)
	if !validator.IsNonNegative(r.Sales) {
		errs = append(errs, validator.ValidationError{Field: "sales", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayPreviewResponse struct {
	Wage      decimal.Decimal `json:"wage"`
	Threshold decimal.Decimal `json:"threshold"`
	Bonus     decimal.Decimal `json:"bonus"`
	Total     decimal.Decimal `json:"total"`
	PayPeriod string          `json:"pay_period,omitempty"`
}

type EstimateNetRequest struct {
	Gross          decimal.Decimal  `json:"gross"`
	AllowanceUsage *decimal.Decimal `json:"allowance_usage,omitempty"` // Fraction in [0,1], defaults to 1
}

func (r *EstimateNetRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsNonNegative(r.Gross) {
		errs = append(errs, validator.ValidationError{Field: "gross", Message: "must be non-negative"})
	}
	if r.AllowanceUsage != nil && !validator.IsFraction(*r.AllowanceUsage) {
		errs = append(errs, validator.ValidationError{Field: "allowance_usage", Message: "must be between 0 and 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type NetSalaryResponse struct {
	Gross     decimal.Decimal `json:"gross"`
	Pension   decimal.Decimal `json:"pension"`
	UnionFee  decimal.Decimal `json:"union_fee"`
	TaxBase   decimal.Decimal `json:"tax_base"`
	IncomeTax decimal.Decimal `json:"income_tax"`
	Allowance decimal.Decimal `json:"allowance"`
	FinalTax  decimal.Decimal `json:"final_tax"`
	Net       decimal.Decimal `json:"net"`

	AllowanceCredit decimal.Decimal `json:"allowance_credit"`
}

func NewNetSalaryResponse(b NetSalaryBreakdown) NetSalaryResponse {
	return NetSalaryResponse{
		Gross:     b.Gross,
		Pension:   b.Pension,
		UnionFee:  b.UnionFee,
		TaxBase:   b.TaxBase,
		IncomeTax: b.IncomeTax,
		Allowance: b.Allowance,
		FinalTax:  b.FinalTax,
		Net:       b.Net,

		AllowanceCredit: b.AllowanceCredit,
	}
}

type PeriodSummaryResponse struct {
	Period     string          `json:"period"`
	PeriodFrom string          `json:"period_from,omitempty"`
	PeriodTo   string          `json:"period_to,omitempty"`
	TotalPay   decimal.Decimal `json:"total_pay"`
	TotalBonus decimal.Decimal `json:"total_bonus"`
	TotalSales decimal.Decimal `json:"total_sales"`
	TotalHours decimal.Decimal `json:"total_hours"`
	ShiftCount int             `json:"shift_count"`
	AvgHourly  decimal.Decimal `json:"avg_hourly"`
}

func NewPeriodSummaryResponse(s PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		Period:     s.Period,
		TotalPay:   s.TotalPay,
		TotalBonus: s.TotalBonus,
		TotalSales: s.TotalSales,
		TotalHours: s.TotalHours,
		ShiftCount: s.ShiftCount,
		AvgHourly:  s.AvgHourly,
	}
}

func validateHours(day, evening decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidHours(day) {
		errs = append(errs, validator.ValidationError{Field: "day_hours", Message: "must be between 0 and 24"})
	}
	if !validator.IsValidHours(evening) {
		errs = append(errs, validator.ValidationError{Field: "evening_hours", Message: "must be between 0 and 24"})
	}
	if len(errs) == 0 && day.Add(evening).GreaterThan(validator.MaxHoursPerDay) {
		errs = append(errs, validator.ValidationError{Field: "evening_hours", Message: "day and evening hours must not exceed 24 in total"})
	}
	return errs
}
