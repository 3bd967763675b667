package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	payrollService "github.com/cmlabs-hris/launa-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
)

var (
	SalesHeader  = []string{"id", "employee_id", "timestamp", "amount", "note"}
	ShiftsHeader = []string{"id", "employee_id", "date", "day_hours", "evening_hours", "sales_total", "wage", "bonus", "total", "pay_period"}
	UsersHeader  = []string{"employee_id", "display_name"}
)

const dateLayout = "2006-01-02"

// cell returns row[i], or "" when a hand-edited row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseAmount reads a numeric cell. Blank cells are zero.
func parseAmount(row []string, i int, field string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(cell(row, i), ",", ".")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func encodeSale(s payroll.Sale) []string {
	timestamp := s.RawTimestamp
	if !s.Timestamp.IsZero() {
		timestamp = s.Timestamp.Format(time.RFC3339)
	}
	return []string{
		s.ID,
		s.EmployeeID,
		timestamp,
		s.Amount.String(),
		s.Note,
	}
}

func decodeSale(row []string) (payroll.Sale, error) {
	s := payroll.Sale{
		ID:         cell(row, 0),
		EmployeeID: cell(row, 1),
		Note:       cell(row, 4),
	}
	if s.ID == "" {
		return payroll.Sale{}, fmt.Errorf("missing id")
	}

	if ts, ok := payrollService.ParseDate(cell(row, 2)); ok {
		s.Timestamp = ts
	} else {
		s.RawTimestamp = cell(row, 2)
	}

	amount, err := parseAmount(row, 3, "amount")
	if err != nil {
		return payroll.Sale{}, err
	}
	s.Amount = amount

	return s, nil
}

func encodeShift(s payroll.Shift) []string {
	date := s.RawDate
	if !s.Date.IsZero() {
		date = s.Date.Format(dateLayout)
	}
	return []string{
		s.ID,
		s.EmployeeID,
		date,
		s.DayHours.String(),
		s.EveningHours.String(),
		s.SalesTotal.String(),
		s.Wage.String(),
		s.Bonus.String(),
		s.Total.String(),
		s.PayPeriod,
	}
}

// decodeShift is strict on the raw inputs and lenient on the derived
// columns: a mangled wage or total reads as zero and the reconciliation
// job rewrites it. An unreadable date is kept as zero, resolves to the
// unknown period and is written back as entered.
func decodeShift(row []string) (payroll.Shift, error) {
	s := payroll.Shift{
		ID:         cell(row, 0),
		EmployeeID: cell(row, 1),
		PayPeriod:  cell(row, 9),
	}
	if s.ID == "" {
		return payroll.Shift{}, fmt.Errorf("missing id")
	}

	if date, ok := payrollService.ParseDate(cell(row, 2)); ok {
		s.Date = date
	} else {
		s.RawDate = cell(row, 2)
	}

	var err error
	if s.DayHours, err = parseAmount(row, 3, "day_hours"); err != nil {
		return payroll.Shift{}, err
	}
	if s.EveningHours, err = parseAmount(row, 4, "evening_hours"); err != nil {
		return payroll.Shift{}, err
	}
	if s.SalesTotal, err = parseAmount(row, 5, "sales_total"); err != nil {
		return payroll.Shift{}, err
	}

	s.Wage, _ = parseAmount(row, 6, "wage")
	s.Bonus, _ = parseAmount(row, 7, "bonus")
	s.Total, _ = parseAmount(row, 8, "total")

	return s, nil
}

func decodeEmployee(row []string) employee.Employee {
	return employee.Employee{
		ID:          cell(row, 0),
		DisplayName: cell(row, 1),
	}
}
