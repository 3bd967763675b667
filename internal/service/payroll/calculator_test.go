package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

// Test a plain day shift that clears the sales threshold
func TestCalculator_Compute_DayShiftWithBonus(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPayRates())

	result := calc.Compute(dec("8"), decimal.Zero, dec("150000"))

	assertDecimal(t, "22376", result.Wage)
	assertDecimal(t, "4452", result.Threshold)
	assertDecimal(t, "145548", result.Bonus)
	assertDecimal(t, "167924", result.Total)
}

// Test that an empty shift produces no pay at all
func TestCalculator_Compute_Zero(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPayRates())

	result := calc.Compute(decimal.Zero, decimal.Zero, decimal.Zero)

	assertDecimal(t, "0", result.Wage)
	assertDecimal(t, "0", result.Threshold)
	assertDecimal(t, "0", result.Bonus)
	assertDecimal(t, "0", result.Total)
}

// Test that sales below the threshold never produce a negative bonus
func TestCalculator_Compute_SalesBelowThreshold(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPayRates())

	result := calc.Compute(dec("4"), dec("4"), dec("1000"))

	assertDecimal(t, "26108", result.Wage) // 4*2797 + 4*3730
	assertDecimal(t, "4452", result.Threshold)
	assertDecimal(t, "0", result.Bonus)
	assertDecimal(t, "26108", result.Total)
}

// Test that hours inside the grace period carry no threshold
func TestCalculator_Compute_ShortShiftHasNoThreshold(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPayRates())

	result := calc.Compute(dec("0.5"), decimal.Zero, dec("200"))

	assertDecimal(t, "1398.5", result.Wage)
	assertDecimal(t, "0", result.Threshold)
	assertDecimal(t, "200", result.Bonus)
	assertDecimal(t, "1598.5", result.Total)
}

func TestCalculator_Compute_Invariants(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPayRates())

	cases := []struct{ day, eve, sales string }{
		{"0", "0", "0"},
		{"1", "0", "0"},
		{"0", "6.5", "12000"},
		{"12", "12", "999999"},
		{"3.25", "2.75", "3180"},
	}

	for _, tc := range cases {
		r := calc.Compute(dec(tc.day), dec(tc.eve), dec(tc.sales))
		assert.False(t, r.Bonus.IsNegative(), "bonus for %+v", tc)
		assert.False(t, r.Threshold.IsNegative(), "threshold for %+v", tc)
		assert.True(t, r.Total.Equal(r.Wage.Add(r.Bonus)), "total for %+v", tc)
	}
}

// Test that custom rates flow through
func TestCalculator_Compute_CustomRates(t *testing.T) {
	calc := NewCalculator(payroll.PayRates{
		DayRate:       dec("100"),
		EveningRate:   dec("200"),
		OffsetHours:   dec("2"),
		DeductionRate: dec("10"),
	})

	result := calc.Compute(dec("3"), dec("1"), dec("50"))

	assertDecimal(t, "500", result.Wage)
	assertDecimal(t, "20", result.Threshold)
	assertDecimal(t, "30", result.Bonus)
	assertDecimal(t, "530", result.Total)
}

func TestCalculator_Derive(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPayRates())

	shift := calc.Derive(payroll.Shift{
		ID:         "s1",
		EmployeeID: "anna",
		Date:       time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
		DayHours:   dec("8"),
		SalesTotal: dec("150000"),
	})

	assertDecimal(t, "22376", shift.Wage)
	assertDecimal(t, "145548", shift.Bonus)
	assertDecimal(t, "167924", shift.Total)
	assert.Equal(t, "2024-03 (Mars)", shift.PayPeriod)
	assert.False(t, calc.Drifted(shift))
}

// Test that a hand-edited total is detected
func TestCalculator_Drifted(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPayRates())

	shift := calc.Derive(payroll.Shift{
		Date:     time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		DayHours: dec("5"),
	})
	assert.False(t, calc.Drifted(shift))

	edited := shift
	edited.Total = edited.Total.Add(dec("1"))
	assert.True(t, calc.Drifted(edited))

	relabeled := shift
	relabeled.PayPeriod = "2024-06 (Júní)"
	assert.True(t, calc.Drifted(relabeled))
}
